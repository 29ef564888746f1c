package constants

var (
	// NoKMTypes lists the activity types that never carry kilometers. The KM
	// cell is forced blank for these even when the caller filled it in.
	NoKMTypes = map[string]bool{
		"Mão-de-obra Técnica": true,
		"Período de Espera":   true,
		"Viagem Aérea":        true,
		"Translado":           true,
	}

	// LaborOnlyType renders a fixed description instead of free text.
	LaborOnlyType        = "Mão-de-obra Técnica"
	LaborOnlyDescription = "Mão-de-Obra-Técnica"

	// ServicePerformedTitle marks the one section whose body uses the large
	// value style.
	ServicePerformedTitle = "SERVIÇO REALIZADO"

	// SectionTitles, in rendering order.
	SectionTitles = []string{
		"PROBLEMA RELATADO/ENCONTRADO",
		ServicePerformedTitle,
		"RESULTADO",
		"PENDÊNCIAS",
		"MATERIAL FORNECIDO PELO CLIENTE",
		"MATERIAL FORNECIDO PELA PRONAV",
	}

	ContinuationSuffix = " - CONTINUAÇÃO"

	DocumentTitle   = "RELATÓRIO DE SERVIÇO"
	FooterStatement = "O SERVIÇO ACIMA FOI EXECUTADO SATISFATORIAMENTE"
	SignatureLeft   = "ASSINATURA DO COMANDANTE"
	SignatureRight  = "ASSINATURA DO TÉCNICO"
	LogoPlaceholder = "PRONAV"
	GalleryTitle    = "RELATÓRIO FOTOGRÁFICO"

	ContactLine = "PRONAV COMÉRCIO E SERVIÇOS LTDA.   |   CNPJ: 54.284.063/0001-46   |   Tel.: (22) 2141-2458   |   Cel.: (22) 99221-1893   |   service@pronav.com.br   |   www.pronav.com.br"
)
