package storage

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"pronav-backend/internal/constants"
)

// ErrReportNotFound is returned by storage implementations when the
// requested report does not exist or belongs to another user.
var ErrReportNotFound = errors.New("relatório não encontrado")

// ReportRecord is one service report as stored in the reports table.
// Narrative fields are plain strings; absent optional fields are "".
type ReportRecord struct {
	ID     int64  `json:"id"`
	UserID string `json:"user_id"`

	Client  string `json:"CLIENTE"`
	Ship    string `json:"NAVIO"`
	Contact string `json:"CONTATO"`
	Work    string `json:"OBRA"`
	Local   string `json:"LOCAL"`
	City    string `json:"CIDADE"`
	State   string `json:"ESTADO"`
	OS      string `json:"OS"`

	// legacy singular equipment fields, used when Equipments is empty
	Equipment    string `json:"EQUIPAMENTO"`
	Manufacturer string `json:"FABRICANTE"`
	Model        string `json:"MODELO"`
	SerialNumber string `json:"NUMERO_SERIE"`

	ReportedProblem  string `json:"PROBLEMA_RELATADO"`
	ServicePerformed string `json:"SERVICO_REALIZADO"`
	Result           string `json:"RESULTADO"`
	PendingIssues    string `json:"PENDENCIAS"`
	ClientMaterial   string `json:"MATERIAL_CLIENTE"`
	CompanyMaterial  string `json:"MATERIAL_PRONAV"`

	Activities []ActivityEntry  `json:"activities"`
	Equipments []EquipmentEntry `json:"EQUIPAMENTOS"`

	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ActivityEntry is one row of the activity log. Either Time (legacy combined
// string) or StartTime+EndTime must be present.
type ActivityEntry struct {
	Date        string `json:"DATA"`
	Time        string `json:"HORA,omitempty"`
	StartTime   string `json:"HORA_INICIO,omitempty"`
	EndTime     string `json:"HORA_FIM,omitempty"`
	Type        string `json:"TIPO"`
	KM          string `json:"KM,omitempty"`
	Description string `json:"DESCRICAO,omitempty"`
	Technician1 string `json:"TECNICO1"`
	Technician2 string `json:"TECNICO2,omitempty"`
	Origin      string `json:"ORIGEM,omitempty"`
	Destination string `json:"DESTINO,omitempty"`
	Motive      string `json:"MOTIVO,omitempty"`
}

type EquipmentEntry struct {
	Name         string `json:"equipamento"`
	Manufacturer string `json:"fabricante"`
	Model        string `json:"modelo"`
	SerialNumber string `json:"numero_serie"`
}

// ImageEntry is one gallery photo with its caption. Captions come exclusively
// from the parallel captions list supplied by the caller, never from image
// metadata.
type ImageEntry struct {
	Bytes   []byte `json:"-"`
	Caption string `json:"caption"`
}

// ReportSummary is the list-view projection returned by GetReportsByUser.
type ReportSummary struct {
	ID        int64     `json:"id"`
	Client    string    `json:"CLIENTE"`
	Ship      string    `json:"NAVIO"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Validate enforces the boundary rules the layout engine assumes: required
// fields present and the KM rule applied per activity type.
func (r *ReportRecord) Validate() error {
	required := map[string]string{
		"user_id":           r.UserID,
		"CLIENTE":           r.Client,
		"NAVIO":             r.Ship,
		"CONTATO":           r.Contact,
		"OBRA":              r.Work,
		"LOCAL":             r.Local,
		"OS":                r.OS,
		"PROBLEMA_RELATADO": r.ReportedProblem,
		"SERVICO_REALIZADO": r.ServicePerformed,
		"RESULTADO":         r.Result,
		"PENDENCIAS":        r.PendingIssues,
		"MATERIAL_CLIENTE":  r.ClientMaterial,
		"MATERIAL_PRONAV":   r.CompanyMaterial,
	}
	for name, v := range required {
		if strings.TrimSpace(v) == "" {
			return fmt.Errorf("campo obrigatório não preenchido: %s", name)
		}
	}
	for i := range r.Activities {
		if err := r.Activities[i].Validate(); err != nil {
			return fmt.Errorf("activities[%d]: %w", i, err)
		}
	}
	return nil
}

// Validate checks required activity fields, the time variants and the KM
// rule. For no-KM activity types the KM value is forced blank so the rendered
// cell is always empty regardless of the input.
func (a *ActivityEntry) Validate() error {
	for name, v := range map[string]string{
		"DATA":     a.Date,
		"TIPO":     a.Type,
		"TECNICO1": a.Technician1,
	} {
		if strings.TrimSpace(v) == "" {
			return fmt.Errorf("campo obrigatório não preenchido: %s", name)
		}
	}

	hasLegacy := strings.TrimSpace(a.Time) != ""
	hasRange := strings.TrimSpace(a.StartTime) != "" && strings.TrimSpace(a.EndTime) != ""
	if !hasLegacy && !hasRange {
		return fmt.Errorf("informe HORA ou HORA_INICIO e HORA_FIM")
	}

	if constants.NoKMTypes[strings.TrimSpace(a.Type)] {
		a.KM = ""
		return nil
	}
	if strings.TrimSpace(a.KM) == "" {
		return fmt.Errorf("campo KM obrigatório para o tipo %q", a.Type)
	}
	return nil
}
