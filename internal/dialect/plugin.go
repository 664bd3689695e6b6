package dialect

import "taskfmt/internal/format"

// Plugin bundles the dialect's entries by name.
type Plugin struct {
	Languages []Language
	Parsers   map[string]Parser
	Printers  map[string]Printer
}

// NewPlugin returns the Taskfile plugin with printers configured by opt.
func NewPlugin(opt format.Options) *Plugin {
	return &Plugin{
		Languages: []Language{Taskfile},
		Parsers:   map[string]Parser{AstFormat: {AstFormat: AstFormat}},
		Printers:  map[string]Printer{AstFormat: {Options: opt}},
	}
}

// LanguageFor returns the language whose file names match path.
func (p *Plugin) LanguageFor(path string) (Language, bool) {
	for _, l := range p.Languages {
		if l.Matches(path) {
			return l, true
		}
	}
	return Language{}, false
}

// Entries returns the parser and printer for a language.
func (p *Plugin) Entries(l Language) (Parser, Printer, bool) {
	for _, name := range l.Parsers {
		parser, ok := p.Parsers[name]
		if !ok {
			continue
		}
		printer, ok := p.Printers[parser.AstFormat]
		if ok {
			return parser, printer, true
		}
	}
	return Parser{}, Printer{}, false
}
