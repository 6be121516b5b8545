package oozie

import (
	"encoding/xml"
	"fmt"
	"os"
	"strings"
)

// ProjectRootProperty is the job property that names the HDFS directory
// attached files are staged into.
const ProjectRootProperty = "oozieProjectRoot"

// PropertiesSource is one of three representations of the job
// configuration: a name/value mapping, a local XML file, or a pre-built
// XML document.
type PropertiesSource interface {
	// XML renders the configuration document sent on submission.
	XML() (string, error)
	// ProjectRoot returns the staging directory carried by the source,
	// or "" if it carries none.
	ProjectRoot() string
}

type MappingProperties map[string]string

type property struct {
	Name  string `xml:"name"`
	Value string `xml:"value"`
}

type configuration struct {
	XMLName    xml.Name   `xml:"configuration"`
	Properties []property `xml:"property"`
}

func (m MappingProperties) XML() (string, error) {
	doc := configuration{Properties: make([]property, 0, len(m))}
	for name, value := range m {
		doc.Properties = append(doc.Properties, property{Name: name, Value: value})
	}

	out, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("cannot marshal job properties: %w", err)
	}
	return xml.Header + string(out), nil
}

func (m MappingProperties) ProjectRoot() string {
	return m[ProjectRootProperty]
}

// FileProperties is a path to a local XML file holding the configuration.
type FileProperties string

func (f FileProperties) XML() (string, error) {
	data, err := os.ReadFile(string(f))
	if err != nil {
		return "", fmt.Errorf("cannot read properties file %s: %w", string(f), err)
	}
	return string(data), nil
}

func (FileProperties) ProjectRoot() string { return "" }

// RawXMLProperties is a pre-built configuration document, passed through
// unchanged and never validated.
type RawXMLProperties string

func (r RawXMLProperties) XML() (string, error) {
	return string(r), nil
}

func (RawXMLProperties) ProjectRoot() string { return "" }

// GuessProperties keeps the historical dispatch rule for a bare string:
// anything containing '<' is literal XML, everything else is a file path.
// Fragile by nature; prefer the explicit types.
func GuessProperties(s string) PropertiesSource {
	if strings.Contains(s, "<") {
		return RawXMLProperties(s)
	}
	return FileProperties(s)
}
