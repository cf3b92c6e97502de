package system

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/julianstephens/daylog/internal/cli"
)

type DebugCmd struct {
	DBPath *DebugDBPathCmd `cmd:"" help:"Show database path."`
	Dump   *DebugDumpCmd   `cmd:"" help:"Dump stored records as JSON."`
}

type DebugDBPathCmd struct{}

func (cmd *DebugDBPathCmd) Run(ctx *cli.Context) error {
	// Output in machine-readable format
	output := map[string]string{
		"path": ctx.Store.GetConfigPath(),
	}

	jsonBytes, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}

	ctx.Println(string(jsonBytes))
	return nil
}

type DebugDumpCmd struct {
	Key string `arg:"" optional:"" help:"Store key to dump. Dumps every key when omitted."`
}

func (cmd *DebugDumpCmd) Run(ctx *cli.Context) error {
	keys := []string{cmd.Key}
	if cmd.Key == "" {
		var err error
		keys, err = ctx.Store.Keys()
		if err != nil {
			return fmt.Errorf("failed to list keys: %w", err)
		}
	}

	output := make(map[string]json.RawMessage, len(keys))
	for _, key := range keys {
		value, ok, err := ctx.Store.Get(key)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", key, err)
		}
		if !ok {
			if cmd.Key != "" {
				return fmt.Errorf("key not found: %s", key)
			}
			continue
		}
		output[key] = rawValue(value)
	}

	var jsonBytes []byte
	var err error
	if cmd.Key != "" {
		jsonBytes, err = json.MarshalIndent(output[cmd.Key], "", "  ")
	} else {
		jsonBytes, err = json.MarshalIndent(output, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}

	ctx.Println(string(jsonBytes))
	return nil
}

// rawValue embeds stored JSON as-is and quotes anything that is not JSON, so
// a corrupt record still shows up in the dump.
func rawValue(value string) json.RawMessage {
	if json.Valid([]byte(value)) {
		var buf bytes.Buffer
		if err := json.Compact(&buf, []byte(value)); err == nil {
			return buf.Bytes()
		}
	}
	quoted, _ := json.Marshal(value)
	return quoted
}
