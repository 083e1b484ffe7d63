package intents

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Variant tags accepted in position 1 of a legacy record.
// "any_path" / "Any_path" survive as aliases of "simple" because the
// original intent generators emitted both spellings.
const (
	tagSimple       = "simple"
	tagAnyPathLower = "any_path"
	tagAnyPathUpper = "Any_path"
	tagPreference   = "path_preference"
	tagECMP         = "ECMP"
)

// Load reads a legacy intent file: a JSON object mapping intent id to
// a positional record
//
//	[protocol, kind, src, dst, path-or-paths, secondary?]
//
// and returns the validated Universe. Dense indices are assigned in
// lexicographic id order so the assignment is reproducible.
func Load(r io.Reader) (*Universe, error) {
	var raw map[string][]json.RawMessage
	dec := json.NewDecoder(r)
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadRecord, err)
	}

	list := make([]Intent, 0, len(raw))
	for _, id := range sortedIDs(raw) {
		in, err := decodeRecord(id, raw[id])
		if err != nil {
			return nil, fmt.Errorf("intent %q: %w", id, err)
		}
		list = append(list, in)
	}

	return NewUniverse(list)
}

// LoadFile is Load over the contents of path.
func LoadFile(path string) (*Universe, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("intents: open %s: %w", path, err)
	}
	defer f.Close()

	return Load(f)
}

// decodeRecord turns one positional record into its variant. The
// payload element 4 is shape-varying (a path for simple, a path list
// for ECMP, the primary path for preference), so it is decoded against
// the tag rather than guessed from its structure.
func decodeRecord(id string, rec []json.RawMessage) (Intent, error) {
	if len(rec) < 5 {
		return nil, fmt.Errorf("%w: want at least 5 elements, got %d", ErrBadRecord, len(rec))
	}

	var kind string
	if err := json.Unmarshal(rec[1], &kind); err != nil {
		return nil, fmt.Errorf("%w: kind tag: %v", ErrBadRecord, err)
	}
	var src, dst string
	if err := json.Unmarshal(rec[2], &src); err != nil {
		return nil, fmt.Errorf("%w: src: %v", ErrBadRecord, err)
	}
	if err := json.Unmarshal(rec[3], &dst); err != nil {
		return nil, fmt.Errorf("%w: dst: %v", ErrBadRecord, err)
	}

	switch kind {
	case tagSimple, tagAnyPathLower, tagAnyPathUpper:
		paths, err := decodePathList(rec[4])
		if err != nil {
			return nil, err
		}
		if len(paths) == 1 {
			return checkEndpoints(Simple{IntentID: id, Path: paths[0]}, src, dst)
		}

		return checkEndpoints(AnyPath{IntentID: id, Paths: paths}, src, dst)

	case tagPreference:
		if len(rec) < 6 {
			return nil, fmt.Errorf("%w: path_preference needs primary and secondary", ErrBadRecord)
		}
		primary, err := decodeOnePath(rec[4])
		if err != nil {
			return nil, err
		}
		secondary, err := decodeOnePath(rec[5])
		if err != nil {
			return nil, err
		}

		return checkEndpoints(PathPreference{IntentID: id, Primary: primary, Secondary: secondary}, src, dst)

	case tagECMP:
		var paths []Path
		if err := json.Unmarshal(rec[4], &paths); err != nil {
			return nil, fmt.Errorf("%w: ECMP paths: %v", ErrBadRecord, err)
		}

		return checkEndpoints(ECMP{IntentID: id, Paths: paths}, src, dst)

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
}

// decodeOnePath accepts either a bare path ["A","B"] or a singleton
// path list [["A","B"]], both of which occur in legacy files.
func decodeOnePath(raw json.RawMessage) (Path, error) {
	list, err := decodePathList(raw)
	if err != nil {
		return nil, err
	}
	if len(list) != 1 {
		return nil, fmt.Errorf("%w: want exactly one path, got %d", ErrBadRecord, len(list))
	}

	return list[0], nil
}

// decodePathList accepts either a bare path ["A","B"] or a path list
// [["A","B"],["A","C","B"]]; generators emitted both shapes for simple
// intents, with multi-element lists meaning "any of these".
func decodePathList(raw json.RawMessage) ([]Path, error) {
	// An empty array satisfies both shapes; route it to the list branch
	// so it is reported as an empty list, not an empty path.
	var p Path
	if err := json.Unmarshal(raw, &p); err == nil && len(p) > 0 {
		return []Path{p}, nil
	}
	var list []Path
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, fmt.Errorf("%w: path: %v", ErrBadRecord, err)
	}
	if len(list) == 0 {
		return nil, fmt.Errorf("%w: empty path list", ErrBadRecord)
	}

	return list, nil
}

// checkEndpoints enforces that every declared path runs src→dst as the
// record claims. Full structural validation happens in NewUniverse.
func checkEndpoints(in Intent, src, dst string) (Intent, error) {
	for _, p := range in.DeclaredPaths() {
		if len(p) < 2 {
			return nil, fmt.Errorf("%w: %d hop(s)", ErrBadPath, len(p))
		}
		if p.Src() != src || p.Dst() != dst {
			return nil, fmt.Errorf("%w: record says %s→%s, path is %s",
				ErrEndpointMismatch, src, dst, p.Key())
		}
	}

	return in, nil
}
