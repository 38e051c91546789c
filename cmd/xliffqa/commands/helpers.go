package commands

import (
	"context"
	"encoding/json"
	"os"

	"gitlab.com/tozd/go/errors"

	"github.com/hnorjordet/xliff-regex-tool/cmd/xliffqa/opts"
	"github.com/hnorjordet/xliff-regex-tool/pkg/profile"
)

// resolveProfile accepts either a profile document path or a profile name.
// Names are looked up in the configured profiles directory.
func resolveProfile(ctx context.Context, o *opts.RootOpts, ref string) (*profile.Profile, error) {
	if _, err := os.Stat(ref); err == nil {
		return profile.Load(ctx, ref)
	}

	infos, err := profile.Discover(ctx, o.Config.ProfilesDir)
	if err != nil {
		return nil, errors.Errorf("discovering profiles: %w", err)
	}
	for _, info := range infos {
		if info.Name == ref {
			return profile.Load(ctx, info.Path)
		}
	}
	return nil, errors.Errorf("profile %q not found (not a file, and no match in %s)", ref, o.Config.ProfilesDir)
}

// writeJSON marshals v indented and writes it to path, or to stdout when
// path is empty or "-".
func writeJSON(v any, path string) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errors.Errorf("encoding result: %w", err)
	}
	data = append(data, '\n')

	if path == "" || path == "-" {
		_, err = os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Errorf("writing result: %w", err)
	}
	return nil
}
