package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// YAML input
	YAMLInfo         Code = 2000
	YAMLInvalid      Code = 2001
	YAMLDuplicateKey Code = 2002
	YAMLMultiDoc     Code = 2003

	// Formatting
	FmtInfo            Code = 3000
	FmtFailed          Code = 3001
	FmtNeedsFormatting Code = 3002

	// File system
	IOLoadFileError  Code = 4001
	IOWriteFileError Code = 4002
	IOWalkError      Code = 4003

	// Project configuration
	ProjInfo          Code = 5000
	ProjConfigInvalid Code = 5001
	ProjConfigUnknown Code = 5002

	// Observability
	ObsInfo    Code = 6000
	ObsTimings Code = 6001
)

var (
	codeDescription = map[Code]string{
		UnknownCode:        "Unknown error",
		YAMLInfo:           "YAML information",
		YAMLInvalid:        "Invalid YAML",
		YAMLDuplicateKey:   "Duplicate mapping key",
		YAMLMultiDoc:       "Multiple YAML documents",
		FmtInfo:            "Formatting information",
		FmtFailed:          "Formatting failed",
		FmtNeedsFormatting: "File is not formatted",
		IOLoadFileError:    "I/O load file error",
		IOWriteFileError:   "I/O write file error",
		IOWalkError:        "I/O directory walk error",
		ProjInfo:           "Project information",
		ProjConfigInvalid:  "Invalid configuration file",
		ProjConfigUnknown:  "Unknown configuration key",
		ObsInfo:            "Observability information",
		ObsTimings:         "Pipeline timings",
	}
)

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("YML%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("FMT%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("PRJ%04d", ic)
	case ic >= 6000 && ic < 7000:
		return fmt.Sprintf("OBS%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[Code(0)]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
