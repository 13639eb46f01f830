package cli

import (
	"github.com/beevik/etree"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"sigs.k8s.io/yaml"
)

func writeYAML(cmd *cobra.Command, v any) error {
	data, err := yaml.Marshal(v)
	if err != nil {
		return errors.Wrap(err, "encoding yaml")
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}

func writeXML(cmd *cobra.Command, root *etree.Element) error {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8" standalone="yes"`)
	doc.SetRoot(root)
	doc.Indent(2)
	_, err := doc.WriteTo(cmd.OutOrStdout())
	return err
}

func errNoXML(what string) error {
	return errors.Errorf("%s: xml output is not available", what)
}

// columnName turns a 1 based column number into its letters, 28 -> AB.
func columnName(col int) string {
	var name []byte
	for col > 0 {
		col--
		name = append([]byte{byte('A' + col%26)}, name...)
		col /= 26
	}
	return string(name)
}
