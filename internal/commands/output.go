package commands

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/SscSPs/compta_core/internal/core/domain"
	"github.com/shopspring/decimal"
)

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func amount(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func printTrialBalance(w io.Writer, tb *domain.TrialBalance) error {
	t := newTable(w)
	fmt.Fprintln(t, "Account\tLabel\tDebit\tCredit\tSolde\t")
	for _, l := range tb.Lines {
		fmt.Fprintf(t, "%s\t%s\t%s\t%s\t%s\t\n", l.AccountNumber, l.AccountLabel, amount(l.TotalDebit), amount(l.TotalCredit), amount(l.Solde))
	}
	fmt.Fprintf(t, "Total\t\t%s\t%s\t%s\t\n", amount(tb.TotalDebit), amount(tb.TotalCredit), amount(tb.TotalDebit.Sub(tb.TotalCredit)))
	return t.Flush()
}

func printStatementLines(t *tabwriter.Writer, title string, lines []domain.StatementLine, total decimal.Decimal) {
	fmt.Fprintf(t, "%s\t\t\t\n", title)
	for _, l := range lines {
		fmt.Fprintf(t, "%s\t%s\t%s\t\n", l.AccountNumber, l.AccountLabel, amount(l.Amount))
	}
	fmt.Fprintf(t, "Total %s\t\t%s\t\n", title, amount(total))
}

func printIncomeStatement(w io.Writer, is *domain.IncomeStatement) error {
	t := newTable(w)
	printStatementLines(t, "charges", is.Charges, is.TotalCharges)
	printStatementLines(t, "produits", is.Produits, is.TotalProduits)
	fmt.Fprintf(t, "Résultat\t\t%s\t\n", amount(is.Result))
	return t.Flush()
}

func printBalanceSheet(w io.Writer, bs *domain.BalanceSheet) error {
	t := newTable(w)
	for _, side := range []struct {
		title string
		lines []domain.BalanceSheetLine
		total decimal.Decimal
	}{
		{"actif", bs.Assets, bs.TotalAssets},
		{"passif", bs.Liabilities, bs.TotalLiabilities},
	} {
		fmt.Fprintf(t, "%s\t\t\t\n", side.title)
		for _, l := range side.lines {
			marker := ""
			if l.Unusual {
				marker = " (!)"
			}
			fmt.Fprintf(t, "%s\t%s\t%s%s\t\n", l.AccountNumber, l.AccountLabel, amount(l.Amount), marker)
		}
		fmt.Fprintf(t, "Total %s\t\t%s\t\n", side.title, amount(side.total))
	}
	if err := t.Flush(); err != nil {
		return err
	}
	if bs.Warning != "" {
		fmt.Fprintln(w, "warning:", bs.Warning)
	}
	return nil
}

func printVATRecap(w io.Writer, recap *domain.VATRecap) error {
	t := newTable(w)
	fmt.Fprintln(t, "Account\tLabel\tKind\tSolde\t")
	for _, l := range recap.Lines {
		fmt.Fprintf(t, "%s\t%s\t%s\t%s\t\n", l.AccountNumber, l.AccountLabel, l.Kind, amount(l.Solde))
	}
	fmt.Fprintf(t, "Collected\t\t\t%s\t\n", amount(recap.Collected))
	fmt.Fprintf(t, "Deductible\t\t\t%s\t\n", amount(recap.Deductible))
	fmt.Fprintf(t, "Payable\t\t\t%s\t\n", amount(recap.Payable))
	return t.Flush()
}
