package testreport

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math"
	"os"
	"regexp"
	"runtime"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"
)

// DefaultMessage substitutes the message of a failure element whose message
// attribute is absent or blank.
const DefaultMessage = "No message provided"

const (
	testCaseTag  = "testcase"
	failureTag   = "failure"
	errorTag     = "error"
	systemOutTag = "system-out"

	nameAttr      = "name"
	classNameAttr = "classname"
	timeAttr      = "time"
	typeAttr      = "type"
	messageAttr   = "message"

	// parallelThreshold is the testcase count above which the parse is
	// distributed across workers. Smaller documents are not worth the
	// goroutine overhead.
	parallelThreshold = 1000
)

// displayNamePattern matches the console-output convention for human-friendly
// test labels: "display-name:" followed by the label, ending at the line.
var displayNamePattern = regexp.MustCompile(`display-name:\s*([^\r\n]+)`)

// Parser turns JUnit XML report files into failures grouped by test class.
// A Parser holds no state; each call is fully independent.
type Parser struct{}

// NewParser creates a new report parser.
func NewParser() *Parser {
	return &Parser{}
}

// ValidateSource checks that path names an existing, readable file. A missing
// file and a permission-denied file surface as distinguishable conditions
// (ErrSourceNotFound vs ErrSourceNotReadable), both wrapped in a ParseError.
func (p *Parser) ValidateSource(path string) error {
	info, err := os.Stat(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return &ParseError{Path: path, Err: ErrSourceNotFound}
	case errors.Is(err, fs.ErrPermission):
		return &ParseError{Path: path, Err: ErrSourceNotReadable}
	case err != nil:
		return &ParseError{Path: path, Err: err}
	}

	if info.IsDir() {
		return &ParseError{Path: path, Err: fmt.Errorf("%w: path is a directory", ErrSourceNotFound)}
	}

	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrPermission) {
			return &ParseError{Path: path, Err: ErrSourceNotReadable}
		}
		return &ParseError{Path: path, Err: err}
	}
	if err := file.Close(); err != nil {
		return &ParseError{Path: path, Err: err}
	}
	return nil
}

// ExtractGroupedFailures parses the report at path and groups every failure
// and error by its declaring class. Malformed XML, I/O errors and missing
// files all abort the whole extraction with a ParseError; there is no partial
// result. A report with no failing test cases yields an empty mapping, which
// is a success.
func (p *Parser) ExtractGroupedFailures(path string) (*GroupedFailures, error) {
	if strings.TrimSpace(path) == "" {
		return nil, ErrEmptyPath
	}
	if err := p.ValidateSource(path); err != nil {
		return nil, err
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	defer file.Close()

	root, err := decodeDocument(file)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}

	testCases := root.elementsByTag(testCaseTag)

	acc := &groupAccumulator{}
	if len(testCases) > parallelThreshold {
		err = processParallel(testCases, acc)
	} else {
		err = processSequential(testCases, acc)
	}
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}

	return acc.result(), nil
}

// ParseTime parses a testcase time attribute. Blank input, non-numeric text
// and non-finite values (NaN, ±Inf) all normalize to 0.0; ParseTime never
// fails. Surrounding whitespace is ignored.
func ParseTime(timeStr string) float64 {
	timeStr = strings.TrimSpace(timeStr)
	if timeStr == "" {
		return 0.0
	}

	parsed, err := strconv.ParseFloat(timeStr, 64)
	if err != nil || math.IsNaN(parsed) || math.IsInf(parsed, 0) {
		return 0.0
	}
	return parsed
}

// xmlNode is a minimal DOM: just enough structure to walk testcase
// descendants the way JUnit reports nest them, without binding to a schema.
type xmlNode struct {
	XMLName  xml.Name
	Attrs    []xml.Attr `xml:",any,attr"`
	Text     string     `xml:",chardata"`
	Children []xmlNode  `xml:",any"`
}

// decodeDocument reads the whole document into an element tree. The decoder
// is non-validating and namespace-unaware by construction, and custom entity
// declarations are not resolved, so hostile documents cannot pull in external
// content or expand entities.
func decodeDocument(r io.Reader) (*xmlNode, error) {
	decoder := xml.NewDecoder(r)
	decoder.Strict = true

	var root xmlNode
	if err := decoder.Decode(&root); err != nil {
		return nil, err
	}
	return &root, nil
}

// attr returns the named attribute's value, ignoring namespaces.
func (n *xmlNode) attr(name string) string {
	for _, a := range n.Attrs {
		if a.Name.Local == name {
			return a.Value
		}
	}
	return ""
}

// attrOrDefault treats an absent or blank attribute as not provided and
// substitutes the default.
func (n *xmlNode) attrOrDefault(name, defaultValue string) string {
	value := n.attr(name)
	if strings.TrimSpace(value) == "" {
		return defaultValue
	}
	return value
}

// elementsByTag collects every descendant element with the given tag, in
// document order.
func (n *xmlNode) elementsByTag(tag string) []*xmlNode {
	var matches []*xmlNode
	n.collectByTag(tag, &matches)
	return matches
}

func (n *xmlNode) collectByTag(tag string, matches *[]*xmlNode) {
	for i := range n.Children {
		child := &n.Children[i]
		if child.XMLName.Local == tag {
			*matches = append(*matches, child)
		}
		child.collectByTag(tag, matches)
	}
}

// textContent concatenates the character data of the element and all of its
// descendants.
func (n *xmlNode) textContent() string {
	var sb strings.Builder
	n.writeText(&sb)
	return sb.String()
}

func (n *xmlNode) writeText(sb *strings.Builder) {
	sb.WriteString(n.Text)
	for i := range n.Children {
		n.Children[i].writeText(sb)
	}
}

// extractDisplayName searches the testcase's system-out blocks, in document
// order, for the first display-name line. A missing label yields the empty
// string; a blank-only label legitimately extracts as empty.
func extractDisplayName(testCase *xmlNode) string {
	for _, systemOut := range testCase.elementsByTag(systemOutTag) {
		content := strings.TrimSpace(systemOut.textContent())
		if match := displayNamePattern.FindStringSubmatch(content); match != nil {
			return strings.TrimSpace(match[1])
		}
	}
	return ""
}

// newFailureFromElements builds one failure record from a testcase element
// and one of its failure/error children. The child's own type attribute wins
// when present and non-blank; otherwise the tag name that produced the record
// is used.
func newFailureFromElements(testCase, failureEl *xmlNode, defaultType string) (*TestFailure, error) {
	return NewTestFailure(
		testCase.attr(nameAttr),
		extractDisplayName(testCase),
		testCase.attr(classNameAttr),
		failureEl.attrOrDefault(typeAttr, defaultType),
		failureEl.attrOrDefault(messageAttr, DefaultMessage),
		strings.TrimSpace(failureEl.textContent()),
		ParseTime(testCase.attr(timeAttr)),
	)
}

func processFailureNodes(nodes []*xmlNode, testCase *xmlNode, acc *groupAccumulator, defaultType string) error {
	for _, node := range nodes {
		failure, err := newFailureFromElements(testCase, node, defaultType)
		if err != nil {
			return err
		}
		if err := acc.group(failure.ClassName).AddFailure(failure); err != nil {
			return err
		}
	}
	return nil
}

// processTestCase extracts every failure and error child of one testcase.
// Both kinds become failure records, distinguished only by their default
// type.
func processTestCase(testCase *xmlNode, acc *groupAccumulator) error {
	if err := processFailureNodes(testCase.elementsByTag(failureTag), testCase, acc, failureTag); err != nil {
		return err
	}
	return processFailureNodes(testCase.elementsByTag(errorTag), testCase, acc, errorTag)
}

func processSequential(testCases []*xmlNode, acc *groupAccumulator) error {
	for _, testCase := range testCases {
		if err := processTestCase(testCase, acc); err != nil {
			return err
		}
	}
	return nil
}

// processParallel distributes test cases across one worker per CPU. Workers
// share nothing but the accumulator's atomic get-or-create and each group's
// atomic add, and the finalize step re-imposes ordering, so the result is
// identical to the sequential path.
func processParallel(testCases []*xmlNode, acc *groupAccumulator) error {
	workers := runtime.NumCPU()
	if workers < 1 {
		workers = 1
	}
	chunk := (len(testCases) + workers - 1) / workers

	var g errgroup.Group
	for start := 0; start < len(testCases); start += chunk {
		end := start + chunk
		if end > len(testCases) {
			end = len(testCases)
		}
		batch := testCases[start:end]
		g.Go(func() error {
			return processSequential(batch, acc)
		})
	}
	return g.Wait()
}
