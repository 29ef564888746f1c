package mysql

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"pronav-backend/internal/storage"
)

const reportColumns = `
	id, user_id, client, ship, contact, work, local, city, state, os,
	equipment, manufacturer, model, serial_number,
	reported_problem, service_performed, result, pending_issues,
	client_material, company_material,
	activities, equipments, status, created_at, updated_at
`

func (s *Storage) SaveReport(ctx context.Context, rep *storage.ReportRecord) (int64, error) {
	const op = "storage.mysql.SaveReport"

	activitiesJSON, err := json.Marshal(rep.Activities)
	if err != nil {
		return 0, fmt.Errorf("%s: failed to encode activities: %w", op, err)
	}
	equipmentsJSON, err := json.Marshal(rep.Equipments)
	if err != nil {
		return 0, fmt.Errorf("%s: failed to encode equipments: %w", op, err)
	}

	stmt := `INSERT INTO service_reports (user_id, client, ship, contact, work, local, city, state, os,
		equipment, manufacturer, model, serial_number,
		reported_problem, service_performed, result, pending_issues, client_material, company_material,
		activities, equipments, status)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	res, err := s.db.ExecContext(ctx, stmt,
		rep.UserID, rep.Client, rep.Ship, rep.Contact, rep.Work, rep.Local, rep.City, rep.State, rep.OS,
		rep.Equipment, rep.Manufacturer, rep.Model, rep.SerialNumber,
		rep.ReportedProblem, rep.ServicePerformed, rep.Result, rep.PendingIssues,
		rep.ClientMaterial, rep.CompanyMaterial,
		string(activitiesJSON), string(equipmentsJSON), rep.Status,
	)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("%s: failed to get insert id: %w", op, err)
	}
	return id, nil
}

func (s *Storage) UpdateReport(ctx context.Context, rep *storage.ReportRecord) error {
	const op = "storage.mysql.UpdateReport"

	activitiesJSON, err := json.Marshal(rep.Activities)
	if err != nil {
		return fmt.Errorf("%s: failed to encode activities: %w", op, err)
	}
	equipmentsJSON, err := json.Marshal(rep.Equipments)
	if err != nil {
		return fmt.Errorf("%s: failed to encode equipments: %w", op, err)
	}

	stmt := `UPDATE service_reports SET client=?, ship=?, contact=?, work=?, local=?, city=?, state=?, os=?,
		equipment=?, manufacturer=?, model=?, serial_number=?,
		reported_problem=?, service_performed=?, result=?, pending_issues=?, client_material=?, company_material=?,
		activities=?, equipments=?, status=?
		WHERE id=? AND user_id=?`

	res, err := s.db.ExecContext(ctx, stmt,
		rep.Client, rep.Ship, rep.Contact, rep.Work, rep.Local, rep.City, rep.State, rep.OS,
		rep.Equipment, rep.Manufacturer, rep.Model, rep.SerialNumber,
		rep.ReportedProblem, rep.ServicePerformed, rep.Result, rep.PendingIssues,
		rep.ClientMaterial, rep.CompanyMaterial,
		string(activitiesJSON), string(equipmentsJSON), rep.Status,
		rep.ID, rep.UserID,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if affected == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrReportNotFound)
	}
	return nil
}

func (s *Storage) scanReport(row *sql.Row) (*storage.ReportRecord, error) {
	rep := &storage.ReportRecord{}
	var activitiesJSON, equipmentsJSON string

	err := row.Scan(
		&rep.ID, &rep.UserID, &rep.Client, &rep.Ship, &rep.Contact, &rep.Work,
		&rep.Local, &rep.City, &rep.State, &rep.OS,
		&rep.Equipment, &rep.Manufacturer, &rep.Model, &rep.SerialNumber,
		&rep.ReportedProblem, &rep.ServicePerformed, &rep.Result, &rep.PendingIssues,
		&rep.ClientMaterial, &rep.CompanyMaterial,
		&activitiesJSON, &equipmentsJSON, &rep.Status, &rep.CreatedAt, &rep.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if activitiesJSON != "" {
		if err := json.Unmarshal([]byte(activitiesJSON), &rep.Activities); err != nil {
			return nil, fmt.Errorf("failed to decode activities: %w", err)
		}
	}
	if equipmentsJSON != "" {
		if err := json.Unmarshal([]byte(equipmentsJSON), &rep.Equipments); err != nil {
			return nil, fmt.Errorf("failed to decode equipments: %w", err)
		}
	}
	return rep, nil
}

func (s *Storage) GetReport(ctx context.Context, id int64, userID string) (*storage.ReportRecord, error) {
	const op = "storage.mysql.GetReport"

	query := `SELECT ` + reportColumns + ` FROM service_reports WHERE id = ? AND user_id = ?`

	rep, err := s.scanReport(s.db.QueryRowContext(ctx, query, id, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrReportNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return rep, nil
}

func (s *Storage) GetReportsByUser(ctx context.Context, userID string) ([]*storage.ReportSummary, error) {
	const op = "storage.mysql.GetReportsByUser"

	stmt := `SELECT id, client, ship, status, created_at, updated_at
		FROM service_reports WHERE user_id = ? ORDER BY updated_at DESC`

	rows, err := s.db.QueryContext(ctx, stmt, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var reports []*storage.ReportSummary
	for rows.Next() {
		r := &storage.ReportSummary{}
		if err := rows.Scan(&r.ID, &r.Client, &r.Ship, &r.Status, &r.CreatedAt, &r.UpdatedAt); err != nil {
			return nil, fmt.Errorf("%s: failed to scan row: %w", op, err)
		}
		reports = append(reports, r)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return reports, nil
}

func (s *Storage) GetAllReports(ctx context.Context) ([]*storage.ReportSummary, error) {
	const op = "storage.mysql.GetAllReports"

	stmt := `SELECT id, client, ship, status, created_at, updated_at
		FROM service_reports ORDER BY updated_at DESC`

	rows, err := s.db.QueryContext(ctx, stmt)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var reports []*storage.ReportSummary
	for rows.Next() {
		r := &storage.ReportSummary{}
		if err := rows.Scan(&r.ID, &r.Client, &r.Ship, &r.Status, &r.CreatedAt, &r.UpdatedAt); err != nil {
			return nil, fmt.Errorf("%s: failed to scan row: %w", op, err)
		}
		reports = append(reports, r)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return reports, nil
}

func (s *Storage) DeleteReport(ctx context.Context, id int64, userID string) error {
	const op = "storage.mysql.DeleteReport"

	res, err := s.db.ExecContext(ctx,
		`DELETE FROM service_reports WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if affected == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrReportNotFound)
	}
	return nil
}
