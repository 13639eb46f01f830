package cli

import (
	"strconv"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

type sheetInfo struct {
	Index     int    `json:"index"`
	Name      string `json:"name"`
	Hidden    bool   `json:"hidden,omitempty"`
	Dimension string `json:"dimension,omitempty"`
}

func newSheetsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "sheets FILE",
		Short: "List the worksheets of a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output, err := outputFormat(cmd)
			if err != nil {
				return err
			}
			if output == OutputXML {
				return errNoXML("sheets")
			}
			xlsx, err := open(cmd, args[0])
			if err != nil {
				return err
			}
			sheets := make([]sheetInfo, 0, xlsx.NumWorksheets())
			for i := range xlsx.NumWorksheets() {
				ws, err := xlsx.Worksheet(i)
				if err != nil {
					return err
				}
				info := sheetInfo{Index: i, Name: ws.Name, Hidden: ws.Hidden}
				if ws.MaxRow > 0 {
					info.Dimension = columnName(ws.MinColumn) + strconv.Itoa(ws.MinRow) + ":" +
						columnName(ws.MaxColumn) + strconv.Itoa(ws.MaxRow)
				}
				sheets = append(sheets, info)
			}
			return writeYAML(cmd, sheets)
		},
	}
}

func newCellsCommand() *cobra.Command {
	var sheet int
	cmd := &cobra.Command{
		Use:   "cells FILE",
		Short: "Print the cell values of a worksheet row by row",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output, err := outputFormat(cmd)
			if err != nil {
				return err
			}
			if output == OutputXML {
				return errNoXML("cells")
			}
			xlsx, err := open(cmd, args[0])
			if err != nil {
				return err
			}
			ws, err := xlsx.Worksheet(sheet)
			if err != nil {
				return errors.Wrapf(err, "sheet %d", sheet)
			}
			rows := [][]string{}
			for r := ws.MinRow; r <= ws.MaxRow && r > 0; r++ {
				var values []string
				for c := ws.MinColumn; c <= ws.MaxColumn; c++ {
					values = append(values, ws.Cell(c, r))
				}
				rows = append(rows, values)
			}
			return writeYAML(cmd, rows)
		},
	}
	cmd.Flags().IntVar(&sheet, "sheet", 0, "index of the worksheet, starting at 0")
	return cmd
}
