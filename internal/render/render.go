// Package render turns the acknowledgements report into markdown using handlebars templates.
package render

import (
	_ "embed"
	"fmt"

	"github.com/anvlkv/acknowledgements/internal/app"
	"github.com/aymerick/raymond"
)

// DefaultTemplate is used when no custom template is given.
//
//go:embed template.md
var DefaultTemplate string

// Render executes handlebars template source with the report as context.
//
// The context holds the report fields (NameAndCount, DepAndNames, NameAndDeps,
// Others, Mention) and the same data in the layout older templates expect:
//
//	thank    list of single-key objects, one of
//	         {NameAndCount: {name, profile_url, count}}
//	         {DepAndNames: {crate_name, contributors: [[name, profile_url]]}}
//	         {NameAndDeps: {name, profile_url, crates}}
//	others   number of contributors below the threshold
//	mention  whether names get an @ prefix
//
// Besides report fields the template can use two helpers:
//
//	{{plural Count "contribution" "contributions"}}
//	{{contributor Name ProfileURL}}
//
// contributor renders a markdown link when the profile url is known,
// prefixed with @ when the report asks for mentions.
func Render(source string, report *app.Report) (string, error) {
	if source == "" {
		source = DefaultTemplate
	}

	tpl, err := raymond.Parse(source)
	if err != nil {
		return "", fmt.Errorf("parsing template: %w", err)
	}
	tpl.RegisterHelper("plural", plural)
	tpl.RegisterHelper("contributor", func(name string, profileURL string) raymond.SafeString {
		return contributor(name, profileURL, report.Mention)
	})

	out, err := tpl.Exec(templateContext(report))
	if err != nil {
		return "", fmt.Errorf("rendering template: %w", err)
	}

	return out, nil
}

func templateContext(report *app.Report) map[string]interface{} {
	return map[string]interface{}{
		"Format":       report.Format,
		"NameAndCount": report.NameAndCount,
		"DepAndNames":  report.DepAndNames,
		"NameAndDeps":  report.NameAndDeps,
		"Others":       report.Others,
		"Mention":      report.Mention,
		"thank":        thank(report),
		"others":       report.Others,
		"mention":      report.Mention,
	}
}

func thank(report *app.Report) []map[string]interface{} {
	var entries []map[string]interface{}
	switch report.Format {
	case app.FormatDepAndNames:
		for _, d := range report.DepAndNames {
			contributors := make([][]string, 0, len(d.Contributors))
			for _, c := range d.Contributors {
				contributors = append(contributors, []string{c.Name, c.ProfileURL})
			}
			entries = append(entries, map[string]interface{}{
				"DepAndNames": map[string]interface{}{
					"crate_name":   d.Name,
					"contributors": contributors,
				},
			})
		}
	case app.FormatNameAndDeps:
		for _, n := range report.NameAndDeps {
			entries = append(entries, map[string]interface{}{
				"NameAndDeps": map[string]interface{}{
					"name":        n.Name,
					"profile_url": n.ProfileURL,
					"crates":      n.Dependencies,
				},
			})
		}
	default:
		for _, n := range report.NameAndCount {
			entries = append(entries, map[string]interface{}{
				"NameAndCount": map[string]interface{}{
					"name":        n.Name,
					"profile_url": n.ProfileURL,
					"count":       n.Count,
				},
			})
		}
	}

	return entries
}

func plural(count interface{}, singular string, plural string) string {
	if fmt.Sprint(count) == "1" {
		return singular
	}
	return plural
}

func contributor(name string, profileURL string, mention bool) raymond.SafeString {
	if profileURL == "" {
		return raymond.SafeString(raymond.Escape(name))
	}
	if mention {
		name = "@" + name
	}

	return raymond.SafeString(fmt.Sprintf("[%s](%s)", raymond.Escape(name), profileURL))
}
