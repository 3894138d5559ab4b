package symbol

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/goccy/go-json"
)

// LineMap is an offline Resolver loaded from a JSON side file, the
// kind a symbol dumper writes next to a build:
//
//	{
//	  "module_base": "0x140000000",
//	  "files": {
//	    "src/main.c": { "12": "0x140001040", "14": "0x14000105c" }
//	  }
//	}
//
// Addresses in the map are absolute for module_base; AddrFromLine and
// LineFromAddr rebase them when the caller supplies a different load
// address.
type LineMap struct {
	base  uint64
	files map[string]map[int]uint64
	names map[string]string // basename -> full key, for loose matching
	lines map[uint64]mapRef
}

type mapRef struct {
	file string
	line int
}

type lineMapJSON struct {
	ModuleBase string                       `json:"module_base"`
	Files      map[string]map[string]string `json:"files"`
}

// LoadLineMap reads and parses a line map file
func LoadLineMap(path string) (*LineMap, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("symbol: read line map: %w", err)
	}
	return ParseLineMap(data)
}

// ParseLineMap parses line map JSON
func ParseLineMap(data []byte) (*LineMap, error) {
	var raw lineMapJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("symbol: parse line map: %w", err)
	}

	lm := &LineMap{
		files: make(map[string]map[int]uint64),
		names: make(map[string]string),
		lines: make(map[uint64]mapRef),
	}

	if raw.ModuleBase != "" {
		base, err := parseAddr(raw.ModuleBase)
		if err != nil {
			return nil, fmt.Errorf("symbol: module_base: %w", err)
		}
		lm.base = base
	}

	for file, entries := range raw.Files {
		byLine := make(map[int]uint64, len(entries))
		for lineStr, addrStr := range entries {
			line, err := strconv.Atoi(lineStr)
			if err != nil || line < 1 {
				return nil, fmt.Errorf("symbol: bad line number %q in %s", lineStr, file)
			}
			addr, err := parseAddr(addrStr)
			if err != nil {
				return nil, fmt.Errorf("symbol: line %d of %s: %w", line, file, err)
			}
			byLine[line] = addr
			lm.lines[addr] = mapRef{file: file, line: line}
		}
		lm.files[file] = byLine
		lm.names[filepath.Base(file)] = file
	}

	return lm, nil
}

func parseAddr(s string) (uint64, error) {
	addr, err := strconv.ParseUint(s, 0, 64)
	if err != nil {
		return 0, fmt.Errorf("bad address %q", s)
	}
	return addr, nil
}

// ModuleBase returns the load address the map was recorded at
func (lm *LineMap) ModuleBase() uint64 {
	return lm.base
}

// AddrFromLine implements Resolver. Files are matched by full path
// first, then by basename, since dump paths rarely survive a checkout
// move intact.
func (lm *LineMap) AddrFromLine(base uint64, file string, line int) (uint64, bool) {
	byLine, ok := lm.files[file]
	if !ok {
		full, found := lm.names[filepath.Base(file)]
		if !found {
			return 0, false
		}
		byLine = lm.files[full]
	}
	addr, ok := byLine[line]
	if !ok {
		return 0, false
	}
	return lm.rebase(addr, base), true
}

// LineFromAddr implements Resolver
func (lm *LineMap) LineFromAddr(base uint64, addr uint64) (string, int, bool) {
	if base != 0 && lm.base != 0 {
		addr = addr - base + lm.base
	}
	ref, ok := lm.lines[addr]
	if !ok {
		return "", 0, false
	}
	return ref.file, ref.line, true
}

func (lm *LineMap) rebase(addr, base uint64) uint64 {
	if base == 0 || lm.base == 0 {
		return addr
	}
	return addr - lm.base + base
}
