// Package gedcom is a permissive tokenizer and writer for GEDCOM 5.5.1
// lineage-linked files. It converts text to a tree of level-tagged nodes
// and back; all semantic interpretation lives in the services layer.
package gedcom

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"
)

// Node is one GEDCOM line plus its subordinate lines. Xref is set only
// on top-level records ("0 @I1@ INDI") and holds the identifier without
// the surrounding @. Pointer values ("1 HUSB @I1@") stay in Value.
type Node struct {
	Level    int
	Xref     string
	Tag      string
	Value    string
	Children []*Node
}

type Document struct {
	Records []*Node
}

// Parse tokenizes GEDCOM text into a document. It is permissive about
// content but strict about line structure: a missing tag or a level
// deeper than parent+1 is a parse error. CONT and CONC lines are folded
// into the value of the line they continue.
func Parse(text string) (*Document, error) {
	doc := &Document{}
	var stack []*Node

	scanner := bufio.NewScanner(strings.NewReader(text))
	scanner.Buffer(make([]byte, 1024), 1024*1024)

	lineNum := 0
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		lineNum++
		if lineNum == 1 {
			line = strings.TrimPrefix(line, "\uFEFF")
		}
		if line == "" {
			continue
		}

		level, rest, err := splitLevel(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNum, err)
		}

		xref := ""
		if strings.HasPrefix(rest, "@") {
			end := strings.Index(rest[1:], "@")
			if end < 0 {
				return nil, fmt.Errorf("line %d: unterminated xref", lineNum)
			}
			xref = rest[1 : end+1]
			rest = strings.TrimSpace(rest[end+2:])
		}
		if rest == "" {
			return nil, fmt.Errorf("line %d: missing tag", lineNum)
		}

		tag := rest
		value := ""
		if sp := strings.IndexByte(rest, ' '); sp >= 0 {
			tag = rest[:sp]
			value = rest[sp+1:]
		}
		tag = strings.ToUpper(tag)

		if tag == "CONT" || tag == "CONC" {
			if level < 1 || level > len(stack) {
				return nil, fmt.Errorf("line %d: continuation without a line to continue", lineNum)
			}
			owner := stack[level-1]
			if tag == "CONT" {
				owner.Value += "\n" + value
			} else {
				owner.Value += value
			}
			continue
		}

		node := &Node{Level: level, Xref: xref, Tag: tag, Value: value}
		switch {
		case level == 0:
			doc.Records = append(doc.Records, node)
			stack = stack[:0]
			stack = append(stack, node)
		case level > len(stack):
			return nil, fmt.Errorf("line %d: level %d under level %d", lineNum, level, len(stack)-1)
		default:
			parent := stack[level-1]
			parent.Children = append(parent.Children, node)
			stack = append(stack[:level], node)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return doc, nil
}

func splitLevel(line string) (int, string, error) {
	sp := strings.IndexByte(line, ' ')
	if sp <= 0 {
		return 0, "", fmt.Errorf("malformed line %q", line)
	}
	level, err := strconv.Atoi(line[:sp])
	if err != nil || level < 0 {
		return 0, "", fmt.Errorf("invalid level in line %q", line)
	}
	return level, strings.TrimSpace(line[sp+1:]), nil
}

// Encode renders the document back to GEDCOM text. Values holding
// embedded newlines are split into CONT lines.
func Encode(doc *Document) string {
	var b strings.Builder
	for _, rec := range doc.Records {
		encodeNode(&b, rec, 0)
	}
	return b.String()
}

func encodeNode(b *strings.Builder, n *Node, level int) {
	lines := strings.Split(n.Value, "\n")

	b.WriteString(strconv.Itoa(level))
	if n.Xref != "" {
		b.WriteString(" @")
		b.WriteString(n.Xref)
		b.WriteString("@")
	}
	b.WriteString(" ")
	b.WriteString(n.Tag)
	if lines[0] != "" {
		b.WriteString(" ")
		b.WriteString(lines[0])
	}
	b.WriteString("\n")

	for _, cont := range lines[1:] {
		b.WriteString(strconv.Itoa(level + 1))
		b.WriteString(" CONT")
		if cont != "" {
			b.WriteString(" ")
			b.WriteString(cont)
		}
		b.WriteString("\n")
	}

	for _, child := range n.Children {
		encodeNode(b, child, level+1)
	}
}
