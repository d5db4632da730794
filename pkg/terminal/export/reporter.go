package export

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"

	"github.com/hydro-tools/water-atlas/pkg/models/api"
)

type TableConfig struct {
	DateWidth    int
	DatasetWidth int
	AreaWidth    int
	VolumeWidth  int
}

func DefaultTableConfig() TableConfig {
	return TableConfig{
		DateWidth:    12,
		DatasetWidth: 32,
		AreaWidth:    12,
		VolumeWidth:  14,
	}
}

// Reporter prints analysis results as a fixed-width terminal table.
type Reporter struct {
	writer io.Writer
	config TableConfig
}

func NewReporter(writer io.Writer) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &Reporter{
		writer: writer,
		config: DefaultTableConfig(),
	}
}

func (c *Reporter) Handle(title string, records []api.ResultRecord) error {
	funcMap := template.FuncMap{
		"formatRow": func(date, dataset, area, volume string) string {
			return fmt.Sprintf("| %-*s | %-*s | %*s | %*s |",
				c.config.DateWidth, date,
				c.config.DatasetWidth, dataset,
				c.config.AreaWidth, area,
				c.config.VolumeWidth, volume)
		},
		"area": func(r api.ResultRecord) string {
			return fmt.Sprintf("%.2f", r.AreaHa)
		},
		"volume": func(r api.ResultRecord) string {
			return fmt.Sprintf("%.4f", r.VolumeTMC)
		},
		"separator": func() string {
			return fmt.Sprintf("+%s+%s+%s+%s+",
				strings.Repeat("-", c.config.DateWidth+2),
				strings.Repeat("-", c.config.DatasetWidth+2),
				strings.Repeat("-", c.config.AreaWidth+2),
				strings.Repeat("-", c.config.VolumeWidth+2))
		},
	}

	tmpl := `
{{.Title}} ({{len .Records}} datasets)

{{separator}}
{{formatRow "Date" "Dataset" "Area (ha)" "Volume (TMC)"}}
{{separator}}
{{range .Records}}{{formatRow .Date .Filename (area .) (volume .)}}
{{end}}{{separator}}
`

	t, err := template.New("results").Funcs(funcMap).Parse(tmpl)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	return t.Execute(c.writer, struct {
		Title   string
		Records []api.ResultRecord
	}{Title: title, Records: records})
}
