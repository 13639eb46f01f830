package cli

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

type workbookInfo struct {
	CodeName     string            `json:"codeName,omitempty"`
	Date1904     bool              `json:"date1904"`
	Active       int               `json:"active"`
	Sheets       []childSheetInfo  `json:"sheets"`
	DefinedNames []definedNameInfo `json:"definedNames,omitempty"`
	PivotCaches  map[int]string    `json:"pivotCaches,omitempty"`
}

// definedNameInfo is one defined name. Sheet-local names repeat across
// sheets, so they are listed rather than keyed by name.
type definedNameInfo struct {
	Name       string `json:"name"`
	LocalSheet *int   `json:"localSheetId,omitempty"`
	Value      string `json:"value"`
}

type childSheetInfo struct {
	Name    string `json:"name"`
	SheetID int    `json:"sheetId"`
	State   string `json:"state,omitempty"`
	ID      string `json:"id,omitempty"`
}

func newWorkbookCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "workbook FILE",
		Short: "Show the workbook part of a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output, err := outputFormat(cmd)
			if err != nil {
				return err
			}
			xlsx, err := open(cmd, args[0])
			if err != nil {
				return err
			}
			pkg := xlsx.Workbook()
			if output == OutputXML {
				data, err := pkg.Marshal()
				if err != nil {
					return errors.Wrap(err, "encoding workbook")
				}
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}

			info := workbookInfo{
				CodeName: pkg.Properties().CodeName.Get(),
				Date1904: pkg.Date1904(),
				Active:   pkg.Active(),
			}
			for _, sh := range pkg.Sheets.Items() {
				info.Sheets = append(info.Sheets, childSheetInfo{
					Name:    sh.Name.Get(),
					SheetID: sh.SheetID.Get(),
					State:   sh.State.Get(),
					ID:      sh.ID.Get(),
				})
			}
			for _, dn := range pkg.DefinedNames.Items() {
				name := definedNameInfo{Name: dn.Name.Get(), Value: dn.Value.Get()}
				if sheet, ok := dn.Scope(); ok {
					name.LocalSheet = &sheet
				}
				info.DefinedNames = append(info.DefinedNames, name)
			}
			for _, pc := range pkg.PivotCaches.Items() {
				if info.PivotCaches == nil {
					info.PivotCaches = make(map[int]string)
				}
				info.PivotCaches[pc.CacheID.Get()] = pc.ID.Get()
			}
			return writeYAML(cmd, info)
		},
	}
}
