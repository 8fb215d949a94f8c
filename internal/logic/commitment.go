// Package logic implements resource-logic circuits: the user-defined
// predicates that govern what kinds of resources may be spent or created,
// and the function-privacy-preserving commitment scheme that hides which
// predicate ran.
package logic

import (
	"github.com/anoma/taiga-core/internal/primitives"
)

// LogicCommitments are the two per-resource logic commitments: slot 1 for the mandatory application logic named in
// resource.logic, slot 2 for an optional dynamic logic named inside
// resource.value.
type LogicCommitments struct {
	Slot1 primitives.LogicCommitment
	Slot2 primitives.LogicCommitment
}

// DefaultDynamicLogicVK is the sentinel compressed verifying key committed
// to in slot 2 when a resource declares no dynamic logic.
var DefaultDynamicLogicVK = primitives.ZeroF()

// Commit computes logic_cm_1 and logic_cm_2 for a resource given its
// compressed application- and dynamic-logic verifying keys and its random
// seed: r_log_i = PRF_{rlog_i}(rseed),
// logic_cm_i = Blake2sCommit(vk_i, r_log_i).
func Commit(seed primitives.RandomSeed, appVK, dynVK primitives.F) (LogicCommitments, error) {
	rLog1, err := primitives.PRFRLog1(seed)
	if err != nil {
		return LogicCommitments{}, err
	}
	rLog2, err := primitives.PRFRLog2(seed)
	if err != nil {
		return LogicCommitments{}, err
	}
	slot1, err := primitives.Blake2sCommit(appVK, rLog1)
	if err != nil {
		return LogicCommitments{}, err
	}
	slot2, err := primitives.Blake2sCommit(dynVK, rLog2)
	if err != nil {
		return LogicCommitments{}, err
	}
	return LogicCommitments{Slot1: slot1, Slot2: slot2}, nil
}
