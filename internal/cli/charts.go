package cli

import (
	"github.com/beevik/etree"
	"github.com/spf13/cobra"

	"github.com/speedata/goxlsx/v2/chart"
)

type chartInfo struct {
	Name  string    `json:"name"`
	Sheet string    `json:"sheet"`
	Bars  []barInfo `json:"bars,omitempty"`
}

type barInfo struct {
	Kind     string `json:"kind"`
	BarDir   string `json:"barDir"`
	Grouping string `json:"grouping"`
	Series   int    `json:"series"`
	GapWidth int    `json:"gapWidth"`
	Labels   bool   `json:"dataLabels,omitempty"`
}

func newChartsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "charts FILE",
		Short: "Show the bar charts drawn on the sheets of a file",
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
			parts, err := xlsx.Charts()
			if err != nil {
				return err
			}

			if output == OutputXML {
				root := etree.NewElement("plotArea")
				root.CreateAttr("xmlns", chart.Namespace)
				for _, p := range parts {
					root.CreateComment(" " + p.Name + " ")
					for _, b := range p.Bars.Bar {
						root.AddChild(b.ToTree())
					}
					for _, b := range p.Bars.Bar3D {
						root.AddChild(b.ToTree())
					}
				}
				return writeXML(cmd, root)
			}

			infos := make([]chartInfo, 0, len(parts))
			for _, p := range parts {
				info := chartInfo{Name: p.Name, Sheet: p.Sheet}
				for _, b := range p.Bars.Bar {
					info.Bars = append(info.Bars, barInfo{
						Kind:     "bar",
						BarDir:   b.BarDir.Get(),
						Grouping: b.Grouping.Get(),
						Series:   b.Ser.Len(),
						GapWidth: b.GapWidth.Get(),
						Labels:   b.DataLabels() != nil,
					})
				}
				for _, b := range p.Bars.Bar3D {
					info.Bars = append(info.Bars, barInfo{
						Kind:     "bar3D",
						BarDir:   b.BarDir.Get(),
						Grouping: b.Grouping.Get(),
						Series:   b.Ser.Len(),
						GapWidth: b.GapWidth.Get(),
						Labels:   b.DataLabels() != nil,
					})
				}
				infos = append(infos, info)
			}
			return writeYAML(cmd, infos)
		},
	}
}
