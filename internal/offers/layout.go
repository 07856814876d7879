package offers

import (
	"fmt"
	"strings"
)

// Side identifies which half of the order book a file carries.
type Side string

const (
	SideBuy  Side = "CPA" // Compra
	SideSell Side = "VDA" // Venda
)

// ParseSide accepts "CPA"/"VDA" in any case.
func ParseSide(s string) (Side, error) {
	switch Side(strings.ToUpper(strings.TrimSpace(s))) {
	case SideBuy:
		return SideBuy, nil
	case SideSell:
		return SideSell, nil
	default:
		return "", fmt.Errorf("unknown side %q (want CPA or VDA)", s)
	}
}

// word is the Portuguese term used inside the side's column names.
func (s Side) word() string {
	if s == SideSell {
		return "Venda"
	}
	return "Compra"
}

// buyColumns is the header assigned to OFER_CPA files. The files carry no
// usable header of their own, so names are assigned by position.
//
//	 0 Data_Sessão                  session date
//	 1 Símbolo_do_Instrumento       instrument symbol (fixed width, space padded)
//	 2 Sentido_Of_Compra            order direction
//	 3 Sequência                    sequence number
//	 4 GenerationID_Of_Compra       generation id
//	 5 Cód_do_Evento_da_Of_Compra   event code
//	 6 Hora_Prioridade              priority timestamp
//	 7 Ind_de_Prioridade_Of_Compra  priority indicator
//	 8 Preço_Of_Compra              price
//	 9 Qtd_Total_Of_Compra          total quantity
//	10 Qtd_Negociada_Of_Compra      traded quantity
//	11 Data_Oferta_Compra           offer date
//	12 Data_de_Entrada_Of_Compra    entry date
//	13 Estado_Of_Compra             offer state
//	14 Condição_Oferta              offer condition
//	15 Corretora                    broker
var buyColumns = []string{
	"Data_Sessão",
	"Símbolo_do_Instrumento",
	"Sentido_Of_Compra",
	"Sequência",
	"GenerationID_Of_Compra",
	"Cód_do_Evento_da_Of_Compra",
	"Hora_Prioridade",
	"Ind_de_Prioridade_Of_Compra",
	"Preço_Of_Compra",
	"Qtd_Total_Of_Compra",
	"Qtd_Negociada_Of_Compra",
	"Data_Oferta_Compra",
	"Data_de_Entrada_Of_Compra",
	"Estado_Of_Compra",
	"Condição_Oferta",
	"Corretora",
}

// keptColumns are never part of the default drop-list.
var keptColumns = map[string]struct{}{
	"Símbolo_do_Instrumento": {},
	"Hora_Prioridade":        {},
	"Preço_Of_Compra":        {},
}

const (
	// SymbolColumn is the instrument symbol column on both sides.
	SymbolColumn = "Símbolo_do_Instrumento"

	// ColumnCount is the number of fields every data line must have.
	ColumnCount = 16
)

// Columns returns the 16 column names for the side.
func Columns(side Side) []string {
	out := make([]string, len(buyColumns))
	for i, c := range buyColumns {
		out[i] = strings.ReplaceAll(c, "Compra", side.word())
	}
	return out
}

// DefaultDropColumns returns the 13 columns removed before writing,
// leaving symbol, priority timestamp and price.
func DefaultDropColumns(side Side) []string {
	out := make([]string, 0, len(buyColumns)-len(keptColumns))
	for _, c := range buyColumns {
		if _, keep := keptColumns[c]; keep {
			continue
		}
		out = append(out, strings.ReplaceAll(c, "Compra", side.word()))
	}
	return out
}
