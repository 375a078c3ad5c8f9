// Package vocab reads controlled vocabularies: the RDF term files published
// for Darwin Core and Dublin Core, and the single column CSV lists used for
// gear and sample types.
package vocab

import (
	"encoding/csv"
	"encoding/xml"
	"io"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

const (
	rdfNS  = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"
	rdfsNS = "http://www.w3.org/2000/01/rdf-schema#"
)

// Term is one entry of a vocabulary. Name is the last path segment of the
// IRI, which is also the column name used in sample logs.
type Term struct {
	Name  string
	Label string
	IRI   string
}

type rdfDocument struct {
	Nodes []rdfNode `xml:",any"`
}

type rdfNode struct {
	About  string     `xml:"http://www.w3.org/1999/02/22-rdf-syntax-ns# about,attr"`
	Labels []rdfLabel `xml:"http://www.w3.org/2000/01/rdf-schema# label"`
}

type rdfLabel struct {
	Lang string `xml:"http://www.w3.org/XML/1998/namespace lang,attr"`
	Text string `xml:",chardata"`
}

// ReadRDF reads the terms of an RDF/XML document. Every top level node that
// has an rdf:about IRI and an rdfs:label becomes a term. English labels are
// preferred over labels without a language, other languages are used only
// when nothing else is present. A term appearing more than once keeps its
// first label.
func ReadRDF(r io.Reader) ([]Term, error) {
	var doc rdfDocument
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, errors.Wrap(err, "unable to parse RDF document")
	}

	var terms []Term
	seen := make(map[string]bool)
	for _, node := range doc.Nodes {
		if node.About == "" || len(node.Labels) == 0 {
			continue
		}
		name := termName(node.About)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		terms = append(terms, Term{Name: name, Label: pickLabel(node.Labels), IRI: node.About})
	}

	return terms, nil
}

// LoadFiles reads each RDF file in turn and returns the terms in file order.
// All files are read even when some fail, the returned error lists every
// file that could not be loaded.
func LoadFiles(fs afero.Fs, paths ...string) ([]Term, error) {
	var (
		terms    []Term
		loadErrs *multierror.Error
	)

	for _, path := range paths {
		t, err := loadFile(fs, path)
		if err != nil {
			loadErrs = multierror.Append(loadErrs, err)
			continue
		}
		terms = append(terms, t...)
	}

	return terms, loadErrs.ErrorOrNil()
}

func loadFile(fs afero.Fs, path string) ([]Term, error) {
	f, err := fs.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to open vocabulary %s", path)
	}
	defer f.Close()

	terms, err := ReadRDF(f)
	if err != nil {
		return nil, errors.Wrapf(err, "vocabulary %s", path)
	}
	return terms, nil
}

// ReadList reads the first column of a CSV list, skipping the first skip
// rows (the list files carry a title and a column heading). Blank entries
// are dropped.
func ReadList(r io.Reader, skip int) ([]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	var (
		values []string
		row    int
	)
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrapf(err, "unable to read list row %d", row+1)
		}
		row++
		if row <= skip || len(record) == 0 {
			continue
		}
		if v := strings.TrimSpace(record[0]); v != "" {
			values = append(values, v)
		}
	}

	return values, nil
}

// LoadList opens path on fs and reads it with ReadList.
func LoadList(fs afero.Fs, path string, skip int) ([]string, error) {
	f, err := fs.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to open list %s", path)
	}
	defer f.Close()

	values, err := ReadList(f, skip)
	if err != nil {
		return nil, errors.Wrapf(err, "list %s", path)
	}
	return values, nil
}

func termName(iri string) string {
	iri = strings.TrimRight(iri, "/")
	if i := strings.LastIndex(iri, "/"); i != -1 {
		return iri[i+1:]
	}
	return iri
}

func pickLabel(labels []rdfLabel) string {
	var plain, other string
	for _, l := range labels {
		text := strings.TrimSpace(l.Text)
		switch {
		case l.Lang == "en" || strings.HasPrefix(l.Lang, "en-"):
			return text
		case l.Lang == "" && plain == "":
			plain = text
		case other == "":
			other = text
		}
	}
	if plain != "" {
		return plain
	}
	return other
}
