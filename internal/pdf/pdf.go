// Package pdf renders customer-facing documents: the quote proposal
// and the technical service report.
package pdf

import (
	"fmt"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

type CompanyData struct {
	Name    string
	CNPJ    string
	Address string
	Phone   string
	Email   string
	Website string
}

type ClientData struct {
	Name     string
	Document string
	Address  string
	Phone    string
	Email    string
}

type LineItem struct {
	Description string
	Quantity    float64
	UnitPrice   float64
	Total       float64
}

type QuoteData struct {
	Number       string
	Date         string
	Status       string
	ProjectName  string
	Scope        string
	DeliveryTime string
	PaymentTerms string
	NFSeNumber   string
	Company      CompanyData
	Client       ClientData
	Items        []LineItem
	Subtotal     float64
	TravelCost   float64
	Discount     float64
	Total        float64
}

type PhotoData struct {
	Caption string
	URL     string
}

type ReportData struct {
	QuoteNumber string
	ProjectName string
	FinalDate   string
	Notes       string
	Company     CompanyData
	Client      ClientData
	Photos      []PhotoData
}

func money(v float64) string { return fmt.Sprintf("R$ %.2f", v) }

// QuotePDF renders the proposal document sent to the client.
func QuotePDF(d QuoteData) ([]byte, error) {
	m := maroto.New(config.NewBuilder().Build())

	m.AddRow(10, text.NewCol(12, d.Company.Name, props.Text{Size: 16, Style: fontstyle.Bold}))
	m.AddRow(5, text.NewCol(12, companyLine(d.Company), props.Text{Size: 8}))
	m.AddRow(4, line.NewCol(12))

	m.AddRow(8, text.NewCol(12, "Orcamento "+d.Number, props.Text{Size: 12, Style: fontstyle.Bold}))
	m.AddRow(5,
		text.NewCol(6, "Data: "+d.Date, props.Text{Size: 9}),
		text.NewCol(6, "Cliente: "+d.Client.Name, props.Text{Size: 9}),
	)
	if d.ProjectName != "" {
		m.AddRow(5, text.NewCol(12, "Projeto: "+d.ProjectName, props.Text{Size: 9}))
	}
	if d.Scope != "" {
		m.AddRow(10, text.NewCol(12, d.Scope, props.Text{Size: 8}))
	}

	m.AddRow(6,
		text.NewCol(6, "Descricao", props.Text{Size: 9, Style: fontstyle.Bold}),
		text.NewCol(2, "Qtd", props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right}),
		text.NewCol(2, "Unitario", props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right}),
		text.NewCol(2, "Total", props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right}),
	)
	for _, it := range d.Items {
		m.AddRow(5,
			text.NewCol(6, it.Description, props.Text{Size: 8}),
			text.NewCol(2, fmt.Sprintf("%g", it.Quantity), props.Text{Size: 8, Align: align.Right}),
			text.NewCol(2, money(it.UnitPrice), props.Text{Size: 8, Align: align.Right}),
			text.NewCol(2, money(it.Total), props.Text{Size: 8, Align: align.Right}),
		)
	}
	m.AddRow(4, line.NewCol(12))

	m.AddRow(5,
		text.NewCol(10, "Subtotal", props.Text{Size: 9, Align: align.Right}),
		text.NewCol(2, money(d.Subtotal), props.Text{Size: 9, Align: align.Right}),
	)
	if d.TravelCost > 0 {
		m.AddRow(5,
			text.NewCol(10, "Deslocamento", props.Text{Size: 9, Align: align.Right}),
			text.NewCol(2, money(d.TravelCost), props.Text{Size: 9, Align: align.Right}),
		)
	}
	if d.Discount > 0 {
		m.AddRow(5,
			text.NewCol(10, "Desconto", props.Text{Size: 9, Align: align.Right}),
			text.NewCol(2, "-"+money(d.Discount), props.Text{Size: 9, Align: align.Right}),
		)
	}
	m.AddRow(7,
		text.NewCol(10, "Total", props.Text{Size: 11, Style: fontstyle.Bold, Align: align.Right}),
		text.NewCol(2, money(d.Total), props.Text{Size: 11, Style: fontstyle.Bold, Align: align.Right}),
	)

	if d.DeliveryTime != "" {
		m.AddRow(5, text.NewCol(12, "Prazo de entrega: "+d.DeliveryTime, props.Text{Size: 8}))
	}
	if d.PaymentTerms != "" {
		m.AddRow(5, text.NewCol(12, "Condicoes de pagamento: "+d.PaymentTerms, props.Text{Size: 8}))
	}
	if d.NFSeNumber != "" {
		m.AddRow(5, text.NewCol(12, "NFS-e: "+d.NFSeNumber, props.Text{Size: 8}))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generate quote: %w", err)
	}
	return doc.GetBytes(), nil
}

// ReportPDF renders the post-execution technical report. Photos are
// referenced by caption and link; embedding remote images is out of
// scope for the document itself.
func ReportPDF(d ReportData) ([]byte, error) {
	m := maroto.New(config.NewBuilder().Build())

	m.AddRow(10, text.NewCol(12, d.Company.Name, props.Text{Size: 16, Style: fontstyle.Bold}))
	m.AddRow(5, text.NewCol(12, companyLine(d.Company), props.Text{Size: 8}))
	m.AddRow(4, line.NewCol(12))

	m.AddRow(8, text.NewCol(12, "Relatorio de Servico", props.Text{Size: 12, Style: fontstyle.Bold}))
	m.AddRow(5,
		text.NewCol(6, "Orcamento: "+d.QuoteNumber, props.Text{Size: 9}),
		text.NewCol(6, "Conclusao: "+d.FinalDate, props.Text{Size: 9}),
	)
	m.AddRow(5, text.NewCol(12, "Cliente: "+d.Client.Name, props.Text{Size: 9}))
	if d.ProjectName != "" {
		m.AddRow(5, text.NewCol(12, "Projeto: "+d.ProjectName, props.Text{Size: 9}))
	}

	if d.Notes != "" {
		m.AddRow(6, text.NewCol(12, "Observacoes", props.Text{Size: 10, Style: fontstyle.Bold}))
		m.AddRow(14, text.NewCol(12, d.Notes, props.Text{Size: 8}))
	}

	if len(d.Photos) > 0 {
		m.AddRow(6, text.NewCol(12, "Registros fotograficos", props.Text{Size: 10, Style: fontstyle.Bold}))
		for i, p := range d.Photos {
			label := fmt.Sprintf("Foto %d", i+1)
			if p.Caption != "" {
				label += ": " + p.Caption
			}
			m.AddRow(5, text.NewCol(12, label, props.Text{Size: 8}))
		}
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generate report: %w", err)
	}
	return doc.GetBytes(), nil
}

func companyLine(c CompanyData) string {
	parts := ""
	if c.CNPJ != "" {
		parts += "CNPJ " + c.CNPJ
	}
	for _, p := range []string{c.Address, c.Phone, c.Email, c.Website} {
		if p == "" {
			continue
		}
		if parts != "" {
			parts += " | "
		}
		parts += p
	}
	return parts
}
