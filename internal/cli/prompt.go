// Copyright (c) 2025 Jeremy Hahn
// Copyright (c) 2025 Automate The Things, LLC
//
// This file is part of go-shardlock.
//
// go-shardlock is dual-licensed:
//
// 1. GNU Affero General Public License v3.0 (AGPL-3.0)
//    See LICENSE file or visit https://www.gnu.org/licenses/agpl-3.0.html
//
// 2. Commercial License
//    Contact licensing@automatethethings.com for commercial licensing options.

package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Prompter drives interactive confirmations on stdin. With AssumeYes set it
// never blocks: mismatches are accepted and the current threshold kept.
type Prompter struct {
	In        io.Reader
	Out       io.Writer
	AssumeYes bool
}

// NewPrompter creates a Prompter bound to the process terminal.
func NewPrompter(assumeYes bool) *Prompter {
	return &Prompter{In: os.Stdin, Out: os.Stderr, AssumeYes: assumeYes}
}

// Confirm asks a yes/no question and returns an error when the operator
// declines. Used as the reconcile continuation policy.
func (p *Prompter) Confirm(warning string) error {
	if p.AssumeYes {
		return nil
	}
	fmt.Fprintf(p.Out, "%s\nContinue anyway? [y/N]: ", warning)
	answer, err := p.readLine()
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}
	switch strings.ToLower(answer) {
	case "y", "yes":
		return nil
	default:
		return fmt.Errorf("declined")
	}
}

// ShareDir confirms the share directory when none was configured. Pressing
// enter accepts def; typing a path uses that instead.
func (p *Prompter) ShareDir(def string) (string, error) {
	if p.AssumeYes {
		return def, nil
	}
	fmt.Fprintf(p.Out,
		"Share directory not provided.\n"+
			"Press enter to use %s, or type the directory to use instead: ", def)
	answer, err := p.readLine()
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}
	if answer == "" {
		return def, nil
	}
	return answer, nil
}

// ResolveThreshold handles a threshold disagreement between the encrypted
// file and a share. The operator can keep the current threshold by pressing
// enter or type a replacement value.
func (p *Prompter) ResolveThreshold(effective, shareThreshold uint8, name string) (uint8, error) {
	if p.AssumeYes {
		return effective, nil
	}
	fmt.Fprintf(p.Out,
		"Share %s reports a threshold of %d but the encrypted file declares %d.\n"+
			"Press enter to keep %d, or type the threshold to use: ",
		name, shareThreshold, effective, effective)
	answer, err := p.readLine()
	if err != nil {
		return 0, fmt.Errorf("failed to read response: %w", err)
	}
	if answer == "" {
		return effective, nil
	}
	v, err := strconv.ParseUint(answer, 10, 8)
	if err != nil || v < 1 {
		return 0, fmt.Errorf("invalid threshold %q", answer)
	}
	return uint8(v), nil
}

func (p *Prompter) readLine() (string, error) {
	line, err := bufio.NewReader(p.In).ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
