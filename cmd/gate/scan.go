package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/shub-krishan208/pale-tsg-v2/internal/config"
	"github.com/shub-krishan208/pale-tsg-v2/internal/gate/scanner"
	"github.com/shub-krishan208/pale-tsg-v2/internal/token"
	"github.com/shub-krishan208/pale-tsg-v2/internal/wire"
)

// onScan runs one offline scan: verify the credential, apply the state
// machine, print the verdict. Exit code 0 means ALLOW, anything else DENY.
func onScan(ctx context.Context, cfg *config.Gate, cf *cliConf, logger *zap.Logger) error {
	tok, err := readToken(cf.token)
	if err != nil {
		return err
	}

	if (cf.overrideScannedAt != "" || cf.overrideCreatedAt != "") && !cf.testMode {
		return errors.New("--override-scanned-at and --override-created-at require --test-mode")
	}
	opts := scanner.ScanOptions{TestMode: cf.testMode}
	if cf.overrideScannedAt != "" {
		t, err := wire.ParseISO(cf.overrideScannedAt)
		if err != nil {
			return fmt.Errorf("invalid --override-scanned-at: %w", err)
		}
		opts.OverrideScannedAt = &t
	}
	if cf.overrideCreatedAt != "" {
		t, err := wire.ParseISO(cf.overrideCreatedAt)
		if err != nil {
			return fmt.Errorf("invalid --override-created-at: %w", err)
		}
		opts.OverrideCreatedAt = &t
	}

	keyPath := cf.keyPath
	if keyPath == "" {
		keyPath = cfg.PublicKeyPath
	}
	if keyPath == "" {
		return errors.New("DENY: no public key configured (set JWT_PUBLIC_KEY_PATH or use --key)")
	}
	pub, err := token.LoadPublicKey(keyPath)
	if err != nil {
		return fmt.Errorf("DENY: %s", err)
	}

	claims, err := token.NewVerifier(pub).Verify(tok)
	expired := false
	switch {
	case err == nil:
	case errors.Is(err, token.ErrExpired):
		// Cryptographically valid, just stale. The scanner decides what an
		// expired credential may still do in each mode.
		expired = true
	default:
		return fmt.Errorf("DENY: %s", err)
	}

	// Replay credentials may carry their original creation time.
	if cf.testMode && opts.OverrideCreatedAt == nil && claims.CreatedAt != "" {
		if t, perr := wire.ParseISO(claims.CreatedAt); perr == nil {
			opts.OverrideCreatedAt = &t
		}
	}

	pool, err := openPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer pool.Close()

	sc := scanner.New(pool, logger, cfg.GateDeviceID)
	var res *scanner.Result
	if cf.mode == "exit" {
		res, err = sc.ProcessExit(ctx, claims, expired, opts)
	} else {
		res, err = sc.ProcessEntry(ctx, claims, expired, opts)
	}
	if err != nil {
		return err
	}

	printOutcome(cf.mode, claims, res)
	if cf.printJSON {
		if raw, jerr := json.MarshalIndent(claims, "", "  "); jerr == nil {
			fmt.Println(string(raw))
		}
	}
	if !res.Allowed {
		return fmt.Errorf("DENY: %s", res.Reason)
	}
	return nil
}

func readToken(flagVal string) (string, error) {
	tok := strings.TrimSpace(flagVal)
	if tok == "" {
		raw, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read token from stdin: %w", err)
		}
		tok = strings.TrimSpace(string(raw))
	}
	if tok == "" {
		return "", errors.New("DENY: no token provided (use --token or pipe token via stdin)")
	}
	return tok, nil
}

func printOutcome(mode string, claims *token.Claims, res *scanner.Result) {
	switch res.Outcome {
	case scanner.OutcomeEntered:
		fmt.Printf("  scanned successfully: %s %s at %s\n", res.Status, res.Flag, res.ScannedAt.Format(time.RFC3339))
	case scanner.OutcomeDuplicateScan:
		fmt.Println("  scanned successfully: DUPLICATE_SCAN")
	case scanner.OutcomeUnexpectedState:
		fmt.Printf("  unexpected state for entryId=%s: %s, ignoring\n", res.EntryID, res.Status)
	case scanner.OutcomeExpiredSeen:
		fmt.Printf("  scanned successfully: EXPIRED at %s\n", res.ScannedAt.Format(time.RFC3339))
	case scanner.OutcomeExited:
		fmt.Println("  scanned successfully: EXITED")
	}
	if !res.Allowed {
		return
	}

	laptop := ""
	if claims.Laptop != nil {
		laptop = *claims.Laptop
	}
	extra := string(claims.Extra)
	if extra == "" {
		extra = "[]"
	}
	exp := ""
	if claims.ExpiresAt != nil {
		exp = strconv.FormatInt(claims.ExpiresAt.Unix(), 10)
	}

	fmt.Println("ALLOW:")
	if mode == "exit" {
		fmt.Printf("  roll:      %s\n", claims.Roll)
		fmt.Printf("  action:    %s\n", token.ActionExiting)
		fmt.Printf("  laptop:    %s\n", laptop)
		fmt.Printf("  extra:     %s\n", extra)
		fmt.Printf("  exitId:    %s\n", res.ExitID)
		fmt.Printf("  exitFlag:  %s\n", res.Flag)
		fmt.Printf("  exp:       %s\n", exp)
		return
	}

	id := claims.EntryID
	if id == "" {
		id = claims.ExitID
	}
	fmt.Printf("  roll:   %s\n", claims.Roll)
	fmt.Printf("  action: %s\n", claims.Action)
	fmt.Printf("  laptop: %s\n", laptop)
	fmt.Printf("  extra:  %s\n", extra)
	fmt.Printf("  id:     %s\n", id)
	fmt.Printf("  exp:    %s\n", exp)
	if res.Flag != "" {
		fmt.Printf("  flag:   %s\n", res.Flag)
	}
}
