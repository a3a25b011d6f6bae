// Command satcity-sim drives a single end-to-end scenario against the
// Verifier and GameEscrow contracts over an in-memory store, without a
// real Bitcoin node or prover: deposit, a signed withdrawal, and a
// mock-backed proof verification that advances the canonical state
// root.
//
// Usage:
//
//	satcity-sim [flags]
//
// Flags:
//
//	-loglevel   Log verbosity: debug, info, warn, error (default: "info")
//	-logformat  Log output format: text, json, color (default: "json")
//	-amount     Fungible amount to deposit and partially withdraw (default: 1000)
//	-version    Print version and exit
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"math/big"
	"os"

	"github.com/holiman/uint256"

	"github.com/satcity/satcity/alkane"
	"github.com/satcity/satcity/codec"
	"github.com/satcity/satcity/crypto"
	"github.com/satcity/satcity/escrow"
	satlog "github.com/satcity/satcity/log"
	"github.com/satcity/satcity/storage"
	"github.com/satcity/satcity/verifier"
)

var (
	version = "v0.1.0-dev"
	commit  = "unknown"
)

func main() {
	os.Exit(run())
}

// run is the actual entry point, returning an exit code so the scenario
// can be driven from tests without calling os.Exit directly.
func run() int {
	cfg := DefaultConfig()

	flag.StringVar(&cfg.LogLevel, "loglevel", cfg.LogLevel, "log verbosity (debug, info, warn, error)")
	flag.StringVar(&cfg.LogFormat, "logformat", cfg.LogFormat, "log output format (text, json, color)")
	flag.Uint64Var(&cfg.Amount, "amount", cfg.Amount, "fungible amount to deposit and partially withdraw")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("satcity-sim %s (commit %s)\n", version, commit)
		return 0
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		return 1
	}

	level, err := parseLevel(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return 1
	}
	satlog.SetDefault(satlog.NewWithFormat(level, cfg.LogFormat, os.Stderr))
	logger := satlog.Default().Module("sim")

	logger.Info("satcity-sim starting", "version", version, "amount", cfg.Amount)

	if err := runScenario(logger, cfg); err != nil {
		logger.Error("scenario failed", "error", err)
		return 1
	}

	logger.Info("scenario completed")
	return 0
}

func parseLevel(s string) (slog.Level, error) {
	switch s {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("unknown log level %q", s)
	}
}

// runScenario walks Initialize -> Deposit -> Withdraw on the escrow
// contract alongside Initialize -> VerifyAndUpdate on the verifier,
// mirroring the system's two halves operating over the same bridge
// identity.
func runScenario(logger *satlog.Logger, cfg Config) error {
	bridge := alkane.NewId(100, 1)
	token := alkane.NewId(200, 1)
	player := alkane.NewId(300, 1)
	escrowOwner := alkane.NewId(1, 1)
	verifierOwner := alkane.NewId(1, 2)

	operatorKey, err := crypto.GenerateKey()
	if err != nil {
		return fmt.Errorf("generate operator key: %w", err)
	}
	operatorPub := crypto.CompressPubkey(operatorKey.PubKey())

	esc := escrow.New(storage.NewMemoryKV())
	if err := esc.Initialize(escrowOwner, operatorPub); err != nil {
		return fmt.Errorf("escrow initialize: %w", err)
	}
	logger.Info("escrow initialized", "owner", escrowOwner.String(), "bridge", bridge.String())

	if err := esc.AddTokenToAllowlist(escrowOwner, token); err != nil {
		return fmt.Errorf("allowlist token: %w", err)
	}

	amount := new(big.Int).SetUint64(cfg.Amount)
	if err := esc.Deposit(player, alkane.Parcel{{Id: token, Value: amount}}); err != nil {
		return fmt.Errorf("deposit: %w", err)
	}
	logger.Info("deposit accepted", "player", player.String(), "token", token.String(), "amount", amount.String())

	withdrawAmount := new(big.Int).Div(amount, big.NewInt(2))
	nonce := big.NewInt(0)
	hash := escrow.WithdrawMessageHash(bridge, player, token, withdrawAmount, nonce)
	sig, err := crypto.Sign(hash, operatorKey)
	if err != nil {
		return fmt.Errorf("sign withdrawal: %w", err)
	}

	resp, err := esc.Withdraw(bridge, player, token, withdrawAmount, nonce, sig)
	if err != nil {
		return fmt.Errorf("withdraw: %w", err)
	}
	logger.Info("withdrawal settled", "released", resp.Alkanes[0].Value.String())

	reg := verifier.NewRegistry()
	reg.Register(codec.VariantCanonical, &verifier.MockBackend{})
	vf := verifier.New(storage.NewMemoryKV(), reg)
	if err := vf.Initialize(verifierOwner, bridge, []byte("genesis-root")); err != nil {
		return fmt.Errorf("verifier initialize: %w", err)
	}

	witness := codec.EncodeWitness(&codec.Witness{
		Version:       codec.WitnessVersion,
		Variant:       codec.VariantCanonical,
		FieldElements: []uint256.Int{*uint256.NewInt(uint64(len(resp.Alkanes)))},
		NewRoot:       []byte("root-after-withdrawal"),
	})
	newRoot, err := vf.VerifyAndUpdate(verifierOwner, witness)
	if err != nil {
		return fmt.Errorf("verify and update: %w", err)
	}
	logger.Info("state root advanced", "new_root", string(newRoot))

	return nil
}
