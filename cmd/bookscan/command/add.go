package command

import (
	"errors"
	"fmt"

	"bookscan/internal/entry"
	"bookscan/internal/records"

	"github.com/spf13/cobra"
)

var (
	addISBN    string
	addForm    entry.Form
	addYes     bool
	addNoInput bool
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a book by hand",
	Long: `Record a book manually. Title, barcode and genre are required; author and
publisher are optional. With --isbn the form is filled in from the catalog
first. Fields given as flags are not prompted for. Adding a barcode that is
already recorded asks for confirmation unless --yes is set.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := loadConfig()
		if err != nil {
			return err
		}
		svc := newServices(cfg, logger)
		defer svc.Close()

		out := cmd.OutOrStdout()
		p := newPrompter(cmd.InOrStdin(), out)

		var form entry.Form
		if addISBN != "" {
			prefilled, found := svc.entries.Prefill(cmd.Context(), addISBN)
			form = prefilled
			if found {
				successColor.Fprintln(out, "Book details filled in from the catalog.")
			} else {
				warnColor.Fprintf(out, "No catalog match for %s. Fill in the remaining fields.\n", addISBN)
			}
		}
		overrideFromFlags(cmd, &form)

		if !addNoInput {
			if err := askFields(cmd, p, &form); err != nil {
				return err
			}
		}

		confirm := func(existing records.Book) bool {
			if addYes {
				return true
			}
			if addNoInput {
				return false
			}
			return p.confirm(fmt.Sprintf("Barcode %s is already recorded as '%s'. Add it anyway?", existing.Barcode, existing.Title))
		}

		outcome, err := svc.entries.Submit(form, confirm)
		if err != nil {
			var verr *entry.ValidationError
			if errors.As(err, &verr) {
				for _, f := range verr.Fields {
					errorColor.Fprintf(out, "✗ %s\n", f.Message)
				}
				errorColor.Fprintln(out, "Title, barcode and genre are required.")
			}
			return err
		}

		if !outcome.Saved {
			warnColor.Fprintf(out, "Not added: '%s' is already in the library.\n", outcome.Duplicate.Title)
			return nil
		}
		successColor.Fprintf(out, "✓ Added '%s' to the library.\n", outcome.Book.Title)
		return nil
	},
}

type formField struct {
	flag  string
	label string
	value *string
}

func fields(f *entry.Form) []formField {
	return []formField{
		{"title", "Title *", &f.Title},
		{"barcode", "Barcode/ISBN *", &f.Barcode},
		{"genre", "Genre *", &f.Genre},
		{"author", "Author", &f.Author},
		{"publisher", "Publisher", &f.Publisher},
	}
}

func overrideFromFlags(cmd *cobra.Command, form *entry.Form) {
	flagValues := fields(&addForm)
	for i, fld := range fields(form) {
		if cmd.Flags().Changed(fld.flag) {
			*fld.value = *flagValues[i].value
		}
	}
}

func askFields(cmd *cobra.Command, p *prompter, form *entry.Form) error {
	for _, fld := range fields(form) {
		if cmd.Flags().Changed(fld.flag) {
			continue
		}
		answer, err := p.ask(fld.label, *fld.value)
		if err != nil {
			return err
		}
		*fld.value = answer
	}
	return nil
}

func init() {
	addCmd.Flags().StringVar(&addISBN, "isbn", "", "fill the form from the catalog first")
	addCmd.Flags().StringVar(&addForm.Title, "title", "", "book title")
	addCmd.Flags().StringVar(&addForm.Barcode, "barcode", "", "barcode or ISBN")
	addCmd.Flags().StringVar(&addForm.Genre, "genre", "", "genre")
	addCmd.Flags().StringVar(&addForm.Author, "author", "", "author(s)")
	addCmd.Flags().StringVar(&addForm.Publisher, "publisher", "", "publisher")
	addCmd.Flags().BoolVarP(&addYes, "yes", "y", false, "add even if the barcode is already recorded")
	addCmd.Flags().BoolVar(&addNoInput, "no-input", false, "do not prompt; use flags and --isbn only")
}
