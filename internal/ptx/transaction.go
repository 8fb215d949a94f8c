package ptx

import (
	"context"

	"github.com/anoma/taiga-core/internal/compliance"
	"github.com/anoma/taiga-core/internal/ledger"
	"github.com/anoma/taiga-core/internal/primitives"
)

// Transaction is a list of PTXs plus a single binding signature.
type Transaction struct {
	PTXs       []*PTX
	DeltaTotal *primitives.Point
	TxHash     primitives.F
	Signature  *BindingSignature
}

// BuildTx finalizes a transaction from its constituent PTXs and their rcv
// sums: it sums the per-action deltas, folds the rcv sums into the binding
// secret, and signs the transaction hash.
func BuildTx(ptxs []*PTX, rcvSums []primitives.F) (*Transaction, error) {
	if len(rcvSums) != len(ptxs) {
		return nil, ErrRcvSumMismatch
	}

	deltaTotal := primitives.IdentityPoint()
	sk := primitives.ZeroF()

	var allPublic []primitives.F
	for i, p := range ptxs {
		for _, a := range p.Actions {
			deltaTotal = primitives.PointAdd(deltaTotal, a.Compliance.Public.Delta)
			allPublic = append(allPublic,
				a.Compliance.Public.NfIn,
				a.Compliance.Public.CmOut,
				a.Compliance.Public.Anchor,
				a.Compliance.Public.Rho,
			)
		}
		sk = addScalar(sk, rcvSums[i])
	}

	txHash := primitives.MustHashN(allPublic...)

	sig, err := Sign(primitives.ToBigInt(sk), txHash)
	if err != nil {
		return nil, err
	}

	return &Transaction{
		PTXs:       ptxs,
		DeltaTotal: deltaTotal,
		TxHash:     txHash,
		Signature:  sig,
	}, nil
}

// VerifyTx checks every compliance and resource-logic proof, checks each
// non-ephemeral input's anchor against real ledger history through the
// oracle, recomputes Δ_total, and verifies the binding signature. The
// oracle consultation is what turns constraint 2's self-consistency (the
// path opens the claimed anchor) into a historical-existence guarantee:
// without it a prover could invent a commitment, anchor, and path that
// agree with each other but were never on any ledger.
func VerifyTx(ctx context.Context, cb *compliance.Builder, registry *LogicRegistry, oracle ledger.AnchorOracle, tx *Transaction) error {
	deltaTotal := primitives.IdentityPoint()
	var allPublic []primitives.F

	for _, p := range tx.PTXs {
		for _, a := range p.Actions {
			ok, err := cb.Verify(a.Compliance)
			if err != nil {
				return err
			}
			if !ok {
				return ErrProofInvalid
			}

			if !a.Input.IsEphemeral {
				known, err := oracle.IsKnownAnchor(ctx, a.Compliance.Public.Anchor)
				if err != nil {
					return err
				}
				if !known {
					return ledger.ErrUnknownAnchor
				}
			}

			if !primitives.Equal(a.Compliance.Public.Rho, p.Rho) {
				return ErrResourceTreeMismatch
			}
			if !primitives.Equal(a.InputLogic.Public.Rho, p.Rho) || !primitives.Equal(a.OutputLogic.Public.Rho, p.Rho) {
				return ErrResourceTreeMismatch
			}
			if !primitives.Equal(a.InputLogic.Public.LeafValue, a.Compliance.Public.NfIn) ||
				!primitives.Equal(a.OutputLogic.Public.LeafValue, a.Compliance.Public.CmOut) {
				return ErrResourceTreeMismatch
			}

			inputLogic, ok := registry.Get(a.Input.Logic)
			if !ok {
				return ErrLogicNotRegistered
			}
			outputLogic, ok := registry.Get(a.Output.Logic)
			if !ok {
				return ErrLogicNotRegistered
			}

			validIn, err := inputLogic.Verify(ctx, a.InputLogic)
			if err != nil {
				return err
			}
			validOut, err := outputLogic.Verify(ctx, a.OutputLogic)
			if err != nil {
				return err
			}
			if !validIn || !validOut {
				return ErrProofInvalid
			}

			deltaTotal = primitives.PointAdd(deltaTotal, a.Compliance.Public.Delta)
			allPublic = append(allPublic,
				a.Compliance.Public.NfIn,
				a.Compliance.Public.CmOut,
				a.Compliance.Public.Anchor,
				a.Compliance.Public.Rho,
			)
		}
	}

	txHash := primitives.MustHashN(allPublic...)
	if !primitives.Equal(txHash, tx.TxHash) {
		return ErrBindingSignatureInvalid
	}

	if !Verify(deltaTotal, txHash, tx.Signature) {
		return ErrBindingSignatureInvalid
	}

	return nil
}
