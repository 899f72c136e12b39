package common

import (
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
)

// CheckOwnerWitness checks witness of the contract owner.
// It panics with ErrNotOwner message on fail.
func CheckOwnerWitness(owner interop.Hash160) {
	checkWitnessWithPanic(owner, ErrNotOwner)
}

// CheckReporterWitness checks witness of the trusted reporting identity.
// It panics with ErrNotReporter message on fail.
func CheckReporterWitness(reporter interop.Hash160) {
	checkWitnessWithPanic(reporter, ErrNotReporter)
}

// CheckRequesterWitness checks witness of the account which created a
// reservation. It panics with ErrNotRequester message on fail.
func CheckRequesterWitness(requester interop.Hash160) {
	checkWitnessWithPanic(requester, ErrNotRequester)
}

// CheckWitness checks witness of the passed caller.
// It panics with ErrWitnessFailed message on fail.
func CheckWitness(caller interop.Hash160) {
	checkWitnessWithPanic(caller, ErrWitnessFailed)
}

// CheckAddress panics with ErrInvalidAddress if addr is not a 20-byte
// script hash.
func CheckAddress(addr interop.Hash160) {
	if len(addr) != interop.Hash160Len {
		panic(ErrInvalidAddress)
	}
}

func checkWitnessWithPanic(caller interop.Hash160, panicMsg string) {
	if len(caller) != interop.Hash160Len || !runtime.CheckWitness(caller) {
		panic(panicMsg)
	}
}
