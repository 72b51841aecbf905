// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

package model

// UnassignedID marks a LocalID or GlobalID field that capability allocation
// (§4.6) has not yet visited.
const UnassignedID = -1

// Thread is a schedulable kernel thread (spec §3).
type Thread struct {
	Name       string
	Entry      string
	StackBase  Address // may be Auto
	StackSize  uint32
	Parameter  string
	Priority   uint32
	LocalID    int
	GlobalID   int
}

// Invocation is a server-side entry point (spec §3, GLOSSARY).
type Invocation struct {
	Name      string
	Entry     string
	StackBase Address
	StackSize uint32
	LocalID   int
	GlobalID  int
}

// Port is a client-side reference to an invocation in another process
// (spec §3). Ports are not first-class kernel objects; they inherit the
// global ID of the invocation they resolve to.
type Port struct {
	Name     string
	Target   string // target process name
	LocalID  int
	GlobalID int // resolved by back-resolution (§4.6)
}

// Receive is a message-destination kernel object (spec §3, GLOSSARY).
type Receive struct {
	Name     string
	LocalID  int
	GlobalID int
}

// Send is a client-side reference to a receive endpoint in another process
// (spec §3). Like Port, Send is not first-class; it inherits the resolved
// receive's global ID.
type Send struct {
	Name     string
	Target   string // target process name
	LocalID  int
	GlobalID int // resolved by back-resolution (§4.6)
}

// Vector is a kernel-created receive endpoint bound to a hardware interrupt
// (spec §3, GLOSSARY). Vectors are a separate ID pool: created by the
// kernel at boot, only delegated by the generator.
type Vector struct {
	Name            string
	InterruptNumber int
	LocalID         int
	GlobalID        int
}

func newThread() Thread         { return Thread{LocalID: UnassignedID, GlobalID: UnassignedID} }
func newInvocation() Invocation { return Invocation{LocalID: UnassignedID, GlobalID: UnassignedID} }
func newPort() Port             { return Port{LocalID: UnassignedID, GlobalID: UnassignedID} }
func newReceive() Receive       { return Receive{LocalID: UnassignedID, GlobalID: UnassignedID} }
func newSend() Send             { return Send{LocalID: UnassignedID, GlobalID: UnassignedID} }
func newVector() Vector         { return Vector{LocalID: UnassignedID, GlobalID: UnassignedID} }
