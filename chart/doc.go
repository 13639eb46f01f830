// Package chart contains the schema classes of bar charts and the pieces
// they are built from: series, data sources and data labels.
//
// Every class has a New constructor returning an instance with OOXML
// defaults, a FromTree function, and ToTree and Equal methods.
//
//	bc := chart.NewBarChart()
//	_ = bc.BarDir.Set("bar")
//	el := bc.ToTree(schema.WithNamespace(chart.Namespace))
package chart
