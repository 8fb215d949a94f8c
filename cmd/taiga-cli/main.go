// Taiga CLI - command-line driver for the shielded execution core.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/anoma/taiga-core/internal/compliance"
	"github.com/anoma/taiga-core/internal/ledger"
	"github.com/anoma/taiga-core/internal/logic"
	"github.com/anoma/taiga-core/internal/primitives"
	"github.com/anoma/taiga-core/internal/resource"
	"github.com/anoma/taiga-core/pkg/common"
	"github.com/anoma/taiga-core/pkg/taiga"
)

const version = "0.1.0"

var log = logrus.New()

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "version":
		fmt.Printf("Taiga CLI v%s\n", version)

	case "help":
		printUsage()

	case "transfer":
		if err := cmdTransfer(); err != nil {
			log.WithError(err).Error("transfer demo failed")
			os.Exit(1)
		}

	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Taiga CLI - command-line driver for the shielded execution core")
	fmt.Println()
	fmt.Println("Usage: taiga-cli <command>")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  version     Show version information")
	fmt.Println("  help        Show this help message")
	fmt.Println("  transfer    Run a single-action shielded transfer end to end")
}

// cmdTransfer builds, finalizes, and verifies a one-action transfer
// against an in-memory ledger: one committed input resource is consumed
// and an identically-kinded output is created for a fresh receiver key.
func cmdTransfer() error {
	ctx := context.Background()

	log.Info("compiling compliance circuit (this can take a while)")
	cb, err := compliance.Setup()
	if err != nil {
		return err
	}

	trivial, err := logic.NewTrivialValidityPredicate()
	if err != nil {
		return err
	}
	core := taiga.NewCoreWithBuilder(cb, trivial)

	store, err := ledger.NewMemoryLedger(ctx)
	if err != nil {
		return err
	}

	// Give the sender a committed resource to spend.
	senderKey, err := primitives.RandomF()
	if err != nil {
		return err
	}
	nonce, err := primitives.RandomF()
	if err != nil {
		return err
	}
	seed, err := primitives.NewRandomSeed()
	if err != nil {
		return err
	}
	label := primitives.FromUint64(1)

	input, err := resource.NewInput(
		trivial.CompressedVK(), label, primitives.ZeroF(),
		5, senderKey, nonce, false, seed,
	)
	if err != nil {
		return err
	}

	cmIn, err := input.Commitment()
	if err != nil {
		return err
	}
	pos, err := store.Append(ctx, cmIn)
	if err != nil {
		return err
	}
	path, err := store.PathTo(ctx, pos)
	if err != nil {
		return err
	}
	anchor, err := store.CurrentRoot(ctx)
	if err != nil {
		return err
	}

	// Receiver only needs a public key.
	receiverKey, err := primitives.RandomF()
	if err != nil {
		return err
	}
	receiverNpk, err := resource.Key(receiverKey).Public()
	if err != nil {
		return err
	}

	output := resource.NewOutput(
		trivial.CompressedVK(), label, primitives.ZeroF(),
		5, receiverNpk, false,
	)
	outSeed, err := primitives.NewRandomSeed()
	if err != nil {
		return err
	}
	if err := output.SetNonce(&input, outSeed); err != nil {
		return err
	}

	log.Info("building partial transaction")
	p, rcvSum, err := core.BuildPTX(ctx, []taiga.ActionWitness{{
		Input:      input,
		Output:     output,
		LedgerPath: path,
		Anchor:     anchor,
		DynamicVK:  logic.DefaultDynamicLogicVK,
		Seed:       outSeed,
	}})
	if err != nil {
		return err
	}

	tx, err := core.BuildTx([]*taiga.PTX{p}, []primitives.F{rcvSum})
	if err != nil {
		return err
	}

	log.Info("verifying transaction")
	if err := core.VerifyTx(ctx, store, tx); err != nil {
		return err
	}

	// Record the spend the way a ledger would.
	nf := p.Actions[0].Compliance.Public.NfIn
	if err := store.Insert(ctx, nf); err != nil {
		return err
	}
	cmOut := p.Actions[0].Compliance.Public.CmOut
	if _, err := store.Append(ctx, cmOut); err != nil {
		return err
	}

	nfBytes := nf.Bytes()
	cmBytes := cmOut.Bytes()
	fmt.Println("Transfer verified.")
	fmt.Printf("  nullifier:  %s\n", common.BytesToHex(nfBytes[:]))
	fmt.Printf("  commitment: %s\n", common.BytesToHex(cmBytes[:]))
	return nil
}
