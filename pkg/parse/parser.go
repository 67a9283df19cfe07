// Package parse converts the probe's itemized output lines into typed
// change records. The format is semi-structured and version-dependent,
// so parsing is tolerant: lines that do not match the entry grammar are
// counted and skipped, and unmapped flag combinations classify as
// unknown rather than failing the run.
package parse

import (
	"strconv"
	"strings"

	"github.com/jverlinden/treecompare/internal/platform"
	"github.com/jverlinden/treecompare/pkg/models"
)

// deletePrefix marks the probe's deletion notices, which use a message
// form instead of the itemize flag string
const deletePrefix = "*deleting"

// itemize flag positions: [0] update type, [1] entry kind, [2] checksum,
// [3] size, [4] time, [5] perms, [6] owner, [7] group, remainder
// version-dependent (ACLs, xattrs)
const (
	posChecksum = 2
	posSize     = 3
	posPerms    = 5
	posOwner    = 6
	posGroup    = 7
)

// Parser is a streaming line classifier. It keeps diagnostic counters
// across a whole run; not safe for concurrent use.
type Parser struct {
	parsed  int
	ignored int
}

// New creates a parser with zeroed counters
func New() *Parser {
	return &Parser{}
}

// Parsed returns the number of lines converted into records
func (p *Parser) Parsed() int { return p.parsed }

// Ignored returns the number of lines skipped as non-entry output
// (summary totals, transfer notices, malformed lines)
func (p *Parser) Ignored() int { return p.ignored }

// ParseLine consumes one raw probe line and produces zero or one
// change record. The boolean is false when the line carried no record.
func (p *Parser) ParseLine(line string) (*models.ChangeRecord, bool) {
	line = strings.TrimRight(line, "\r\n")
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return nil, false
	}

	if strings.HasPrefix(trimmed, deletePrefix) {
		if rec, ok := p.parseDeletion(trimmed); ok {
			p.parsed++
			return rec, true
		}
		p.ignored++
		return nil, false
	}

	flags, rest, ok := splitFlags(trimmed)
	if !ok {
		p.ignored++
		return nil, false
	}

	path, size, sizeKnown := splitPathAndSize(rest)
	isDir := strings.HasSuffix(path, "/")
	kind := entryKind(flags, isDir)
	if kind == models.KindSymlink {
		path = stripLinkTarget(path)
	}
	path = platform.NormalizeKey(path)
	if path == "" || path == "." {
		p.ignored++
		return nil, false
	}

	p.parsed++
	return &models.ChangeRecord{
		Type:      classify(flags, isDir),
		Kind:      kind,
		Path:      path,
		Size:      size,
		SizeKnown: sizeKnown,
	}, true
}

// parseDeletion handles "*deleting   path" notices. Sizes are never
// reported for deletions.
func (p *Parser) parseDeletion(line string) (*models.ChangeRecord, bool) {
	path := strings.TrimSpace(strings.TrimPrefix(line, deletePrefix))
	if path == "" {
		return nil, false
	}
	kind := models.KindFile
	if strings.HasSuffix(path, "/") {
		kind = models.KindDir
	}
	return &models.ChangeRecord{
		Type: models.ChangeDeleted,
		Kind: kind,
		Path: platform.NormalizeKey(path),
	}, true
}

// splitFlags separates the leading itemize flag string from the rest of
// the line, validating the two positions every probe version defines
func splitFlags(line string) (flags, rest string, ok bool) {
	sp := strings.IndexByte(line, ' ')
	if sp < 0 {
		return "", "", false
	}
	flags = line[:sp]
	rest = strings.TrimLeft(line[sp+1:], " ")
	if len(flags) < 4 || rest == "" {
		return "", "", false
	}
	switch flags[0] {
	case '>', '<', 'c', 'h', '.':
	default:
		return "", "", false
	}
	switch flags[1] {
	case 'f', 'd', 'L', 'D', 'S':
	default:
		return "", "", false
	}
	return flags, rest, true
}

// splitPathAndSize peels an optional trailing byte count off the line.
// A malformed size field degrades to "absent" rather than discarding
// the record.
func splitPathAndSize(rest string) (path string, size int64, known bool) {
	sp := strings.LastIndexByte(rest, ' ')
	if sp < 0 {
		return rest, 0, false
	}
	n, err := strconv.ParseInt(strings.TrimSpace(rest[sp+1:]), 10, 64)
	if err != nil || n < 0 {
		return rest, 0, false
	}
	path = strings.TrimRight(rest[:sp], " ")
	if path == "" {
		return rest, 0, false
	}
	return path, n, true
}

// stripLinkTarget removes the "name -> target" arrow notation the probe
// uses for symlink entries
func stripLinkTarget(path string) string {
	if i := strings.Index(path, " -> "); i >= 0 {
		return path[:i]
	}
	return path
}

// entryKind maps the kind indicator to an entry kind; the trailing
// slash on the path is the fallback for older probe versions
func entryKind(flags string, isDir bool) models.EntryKind {
	switch flags[1] {
	case 'f':
		return models.KindFile
	case 'd':
		return models.KindDir
	case 'L':
		return models.KindSymlink
	case 'D', 'S':
		return models.KindOther
	}
	if isDir {
		return models.KindDir
	}
	return models.KindOther
}

// classifyRule is one row of the status-flag table. Rules are evaluated
// in order; the first match wins.
type classifyRule struct {
	change models.ChangeType
	match  func(flags string, isDir bool) bool
}

// classifyTable pins the flag-to-change-type precedence: kind conflicts
// first, then creation, then content, then mode-only. Combinations no
// rule recognizes fall through to unknown.
var classifyTable = []classifyRule{
	{models.ChangeTypeChanged, func(flags string, isDir bool) bool {
		// kind indicator disagrees with the path's directory marker
		return (flags[1] == 'd') != isDir
	}},
	{models.ChangeAdded, func(flags string, isDir bool) bool {
		return allPlus(flags[2:])
	}},
	{models.ChangeModified, func(flags string, isDir bool) bool {
		return hasFlag(flags, posChecksum, 'c') || hasFlag(flags, posSize, 's')
	}},
	{models.ChangePermissions, func(flags string, isDir bool) bool {
		return hasFlag(flags, posPerms, 'p') ||
			hasFlag(flags, posOwner, 'o') ||
			hasFlag(flags, posGroup, 'g')
	}},
}

func classify(flags string, isDir bool) models.ChangeType {
	for _, rule := range classifyTable {
		if rule.match(flags, isDir) {
			return rule.change
		}
	}
	return models.ChangeUnknown
}

func allPlus(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] != '+' {
			return false
		}
	}
	return true
}

func hasFlag(flags string, pos int, c byte) bool {
	return pos < len(flags) && flags[pos] == c
}
