package logic

import (
	"testing"

	"github.com/anoma/taiga-core/internal/primitives"
)

func TestCommitDeterministic(t *testing.T) {
	var seed primitives.RandomSeed
	seed[0] = 5
	appVK := primitives.FromUint64(100)

	c1, err := Commit(seed, appVK, DefaultDynamicLogicVK)
	if err != nil {
		t.Fatalf("Commit failed: %v", err)
	}
	c2, err := Commit(seed, appVK, DefaultDynamicLogicVK)
	if err != nil {
		t.Fatalf("Commit failed: %v", err)
	}
	if !c1.Slot1.Equal(c2.Slot1) || !c1.Slot2.Equal(c2.Slot2) {
		t.Error("logic commitments should be deterministic in (seed, vks)")
	}
}

func TestCommitSlotsIndependent(t *testing.T) {
	var seed primitives.RandomSeed
	seed[0] = 5
	vk := primitives.FromUint64(100)

	// Even committing the same vk in both slots must give different
	// commitments: the two slots use distinct PRF tags.
	c, err := Commit(seed, vk, vk)
	if err != nil {
		t.Fatalf("Commit failed: %v", err)
	}
	if c.Slot1.Equal(c.Slot2) {
		t.Error("slot randomizers should be domain-separated")
	}
}

func TestCommitHidesVK(t *testing.T) {
	var s1, s2 primitives.RandomSeed
	s1[0], s2[0] = 1, 2
	vk := primitives.FromUint64(100)

	c1, err := Commit(s1, vk, DefaultDynamicLogicVK)
	if err != nil {
		t.Fatalf("Commit failed: %v", err)
	}
	c2, err := Commit(s2, vk, DefaultDynamicLogicVK)
	if err != nil {
		t.Fatalf("Commit failed: %v", err)
	}
	if c1.Slot1.Equal(c2.Slot1) {
		t.Error("the same vk under different seeds should commit differently")
	}
}
