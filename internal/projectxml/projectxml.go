// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

// Package projectxml ingests the Project XML description into a typed
// model.Project (spec §4.1, §6).
package projectxml

import (
	"fmt"
	"os"

	"rmegen/internal/generrors"
	"rmegen/internal/ingest"
	"rmegen/internal/model"
	"rmegen/internal/xmlnode"
)

// Load reads and parses the project XML file at path into a model.Project.
func Load(path string) (model.Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Project{}, generrors.Wrap(err, generrors.XMLSyntax, path)
	}
	root, err := xmlnode.Parse(data, "Project")
	if err != nil {
		return model.Project{}, generrors.Wrap(err, generrors.XMLSyntax, "Project")
	}
	return decodeProject(root)
}

func decodeProject(root xmlnode.Node) (model.Project, error) {
	var proj model.Project
	var err error

	if proj.Name, err = text(root, "Name", "Project"); err != nil {
		return proj, err
	}
	if proj.Platform, err = text(root, "Platform", "Project"); err != nil {
		return proj, err
	}
	if proj.ChipClass, err = text(root, "Chip_Class", "Project"); err != nil {
		return proj, err
	}
	if proj.ChipFull, err = text(root, "Chip_Full", "Project"); err != nil {
		return proj, err
	}

	rmeNode, err := requireChild(root, "RME", "Project")
	if err != nil {
		return proj, err
	}
	if proj.RME, err = decodeRME(rmeNode); err != nil {
		return proj, err
	}

	rvmNode, err := requireChild(root, "RVM", "Project")
	if err != nil {
		return proj, err
	}
	if proj.RVM, err = decodeRVM(rvmNode); err != nil {
		return proj, err
	}

	for i, p := range root.ChildrenOf("Process") {
		path := fmt.Sprintf("Project.Process[%d]", i)
		process, err := decodeProcess(p, path)
		if err != nil {
			return proj, err
		}
		proj.Processes = append(proj.Processes, process)
	}

	return proj, nil
}

func decodeRME(n xmlnode.Node) (model.RMEConfig, error) {
	var rme model.RMEConfig
	compilerNode, err := requireChild(n, "Compiler", "Project.RME")
	if err != nil {
		return rme, err
	}
	if rme.Compiler, err = decodeCompiler(compilerNode, "Project.RME.Compiler"); err != nil {
		return rme, err
	}

	general, err := requireChild(n, "General", "Project.RME")
	if err != nil {
		return rme, err
	}
	base := "Project.RME.General"
	if rme.CodeStart, err = hexField(general, "Code_Start", base); err != nil {
		return rme, err
	}
	codeSize, err := hexField(general, "Code_Size", base)
	if err != nil {
		return rme, err
	}
	if codeSize.IsAuto() {
		return rme, generrors.New(generrors.XMLSyntax, base+".Code_Size", base+".Code_Size may not be Auto")
	}
	rme.CodeSize = codeSize.Value

	if rme.DataStart, err = hexField(general, "Data_Start", base); err != nil {
		return rme, err
	}
	dataSize, err := hexField(general, "Data_Size", base)
	if err != nil {
		return rme, err
	}
	if dataSize.IsAuto() {
		return rme, generrors.New(generrors.XMLSyntax, base+".Data_Size", base+".Data_Size may not be Auto")
	}
	rme.DataSize = dataSize.Value

	extraKmem, err := uintField(general, "Extra_Kmem", base)
	if err != nil {
		return rme, err
	}
	rme.ExtraKmem = extraKmem

	kmemOrder, err := uintField(general, "Kmem_Order", base)
	if err != nil {
		return rme, err
	}
	rme.KmemOrder = kmemOrder

	kernPrios, err := uintField(general, "Kern_Prios", base)
	if err != nil {
		return rme, err
	}
	rme.KernPrios = kernPrios

	rme.PlatformAttrs = map[string]string{}
	if platNode, ok := n.Child("Platform"); ok {
		rme.PlatformAttrs = decodeAttributes(platNode)
	}
	rme.ChipAttrs = map[string]string{}
	if chipNode, ok := n.Child("Chip"); ok {
		rme.ChipAttrs = decodeAttributes(chipNode)
	}

	return rme, nil
}

func decodeRVM(n xmlnode.Node) (model.RVMConfig, error) {
	var rvm model.RVMConfig
	compilerNode, err := requireChild(n, "Compiler", "Project.RVM")
	if err != nil {
		return rvm, err
	}
	if rvm.Compiler, err = decodeCompiler(compilerNode, "Project.RVM.Compiler"); err != nil {
		return rvm, err
	}

	general, err := requireChild(n, "General", "Project.RVM")
	if err != nil {
		return rvm, err
	}
	base := "Project.RVM.General"
	codeSize, err := hexField(general, "Code_Size", base)
	if err != nil {
		return rvm, err
	}
	if codeSize.IsAuto() {
		return rvm, generrors.New(generrors.XMLSyntax, base+".Code_Size", base+".Code_Size may not be Auto")
	}
	rvm.CodeSize = codeSize.Value

	dataSize, err := hexField(general, "Data_Size", base)
	if err != nil {
		return rvm, err
	}
	if dataSize.IsAuto() {
		return rvm, generrors.New(generrors.XMLSyntax, base+".Data_Size", base+".Data_Size may not be Auto")
	}
	rvm.DataSize = dataSize.Value

	extraCaptbl, err := uintField(general, "Extra_Captbl", base)
	if err != nil {
		return rvm, err
	}
	rvm.ExtraCaptbl = extraCaptbl

	recoveryText, err := text(general, "Recovery", base)
	if err != nil {
		return rvm, err
	}
	switch recoveryText {
	case "thread":
		rvm.Recovery = model.RecoveryThread
	case "process":
		rvm.Recovery = model.RecoveryProcess
	case "system":
		rvm.Recovery = model.RecoverySystem
	default:
		return rvm, generrors.New(generrors.XMLSyntax, base+".Recovery",
			base+".Recovery must be one of thread, process, system")
	}

	// VMM is parsed by nothing: the original source's VMM handling is
	// explicitly unused (spec §9 open question) and no semantics are
	// invented for it here. A <VMM> element, if present, is ignored.

	rvm.CodeStart = model.Invalid
	rvm.DataStart = model.Invalid

	return rvm, nil
}

func decodeCompiler(n xmlnode.Node, path string) (model.CompilerOptions, error) {
	var c model.CompilerOptions
	optText, err := text(n, "Optimization", path)
	if err != nil {
		return c, err
	}
	switch model.OptimizationLevel(optText) {
	case model.OptO0, model.OptO1, model.OptO2, model.OptO3, model.OptOS:
		c.Optimization = model.OptimizationLevel(optText)
	default:
		return c, generrors.New(generrors.XMLSyntax, path+".Optimization",
			path+".Optimization must be one of O0, O1, O2, O3, OS")
	}
	prefText, err := text(n, "Preference", path)
	if err != nil {
		return c, err
	}
	switch prefText {
	case "Size":
		c.PreferSize = true
	case "Time":
		c.PreferSize = false
	default:
		return c, generrors.New(generrors.XMLSyntax, path+".Preference",
			path+".Preference must be Size or Time")
	}
	return c, nil
}

func decodeProcess(n xmlnode.Node, path string) (model.Process, error) {
	general, err := requireChild(n, "General", path)
	if err != nil {
		return model.Process{}, err
	}
	name, err := text(general, "Name", path+".General")
	if err != nil {
		return model.Process{}, err
	}
	proc := model.NewProcess(name)

	extraCaptbl, err := uintField(general, "Extra_Captbl", path+".General")
	if err != nil {
		return proc, err
	}
	proc.ExtraCaptbl = extraCaptbl

	compilerNode, err := requireChild(n, "Compiler", path)
	if err != nil {
		return proc, err
	}
	if proc.Compiler, err = decodeCompiler(compilerNode, path+".Compiler"); err != nil {
		return proc, err
	}

	for i, m := range n.ChildrenOf("Memory") {
		mpath := fmt.Sprintf("%s.Memory[%d]", path, i)
		seg, err := ingest.ParseMemorySegment(m, mpath)
		if err != nil {
			return proc, err
		}
		switch seg.Kind {
		case model.SegmentCode:
			proc.CodeSegments = append(proc.CodeSegments, seg)
		case model.SegmentData:
			proc.DataSegments = append(proc.DataSegments, seg)
		case model.SegmentDevice:
			proc.DeviceSegments = append(proc.DeviceSegments, seg)
		}
	}

	for i, t := range n.ChildrenOf("Thread") {
		tpath := fmt.Sprintf("%s.Thread[%d]", path, i)
		thread, err := decodeThread(t, tpath)
		if err != nil {
			return proc, err
		}
		proc.Threads = append(proc.Threads, thread)
	}

	for i, inv := range n.ChildrenOf("Invocation") {
		ipath := fmt.Sprintf("%s.Invocation[%d]", path, i)
		invocation, err := decodeInvocation(inv, ipath)
		if err != nil {
			return proc, err
		}
		proc.Invocations = append(proc.Invocations, invocation)
	}

	for i, p := range n.ChildrenOf("Port") {
		ppath := fmt.Sprintf("%s.Port[%d]", path, i)
		portName, err := text(p, "Name", ppath)
		if err != nil {
			return proc, err
		}
		target, err := text(p, "Process", ppath)
		if err != nil {
			return proc, err
		}
		proc.Ports = append(proc.Ports, model.Port{
			Name: portName, Target: target,
			LocalID: model.UnassignedID, GlobalID: model.UnassignedID,
		})
	}

	for i, r := range n.ChildrenOf("Receive") {
		rpath := fmt.Sprintf("%s.Receive[%d]", path, i)
		rname, err := text(r, "Name", rpath)
		if err != nil {
			return proc, err
		}
		proc.Receives = append(proc.Receives, model.Receive{
			Name: rname, LocalID: model.UnassignedID, GlobalID: model.UnassignedID,
		})
	}

	for i, s := range n.ChildrenOf("Send") {
		spath := fmt.Sprintf("%s.Send[%d]", path, i)
		sname, err := text(s, "Name", spath)
		if err != nil {
			return proc, err
		}
		target, err := text(s, "Process", spath)
		if err != nil {
			return proc, err
		}
		proc.Sends = append(proc.Sends, model.Send{
			Name: sname, Target: target,
			LocalID: model.UnassignedID, GlobalID: model.UnassignedID,
		})
	}

	for i, v := range n.ChildrenOf("Vector") {
		vpath := fmt.Sprintf("%s.Vector[%d]", path, i)
		vname, err := text(v, "Name", vpath)
		if err != nil {
			return proc, err
		}
		numText, err := text(v, "Number", vpath)
		if err != nil {
			return proc, err
		}
		num, err := ingest.ParseRequiredUint32(vpath+".Number", numText)
		if err != nil {
			return proc, err
		}
		proc.Vectors = append(proc.Vectors, model.Vector{
			Name: vname, InterruptNumber: int(num),
			LocalID: model.UnassignedID, GlobalID: model.UnassignedID,
		})
	}

	return proc, nil
}

func decodeThread(n xmlnode.Node, path string) (model.Thread, error) {
	name, err := text(n, "Name", path)
	if err != nil {
		return model.Thread{}, err
	}
	entry, err := text(n, "Entry", path)
	if err != nil {
		return model.Thread{}, err
	}
	stackAddr, err := hexField(n, "Stack_Addr", path)
	if err != nil {
		return model.Thread{}, err
	}
	stackSize, err := uintField(n, "Stack_Size", path)
	if err != nil {
		return model.Thread{}, err
	}
	param := ""
	if pn, ok := n.Child("Parameter"); ok {
		param = pn.Text
	}
	priority, err := uintField(n, "Priority", path)
	if err != nil {
		return model.Thread{}, err
	}
	return model.Thread{
		Name: name, Entry: entry, StackBase: stackAddr, StackSize: stackSize,
		Parameter: param, Priority: priority,
		LocalID: model.UnassignedID, GlobalID: model.UnassignedID,
	}, nil
}

func decodeInvocation(n xmlnode.Node, path string) (model.Invocation, error) {
	name, err := text(n, "Name", path)
	if err != nil {
		return model.Invocation{}, err
	}
	entry, err := text(n, "Entry", path)
	if err != nil {
		return model.Invocation{}, err
	}
	stackAddr, err := hexField(n, "Stack_Addr", path)
	if err != nil {
		return model.Invocation{}, err
	}
	stackSize, err := uintField(n, "Stack_Size", path)
	if err != nil {
		return model.Invocation{}, err
	}
	return model.Invocation{
		Name: name, Entry: entry, StackBase: stackAddr, StackSize: stackSize,
		LocalID: model.UnassignedID, GlobalID: model.UnassignedID,
	}, nil
}

func decodeAttributes(n xmlnode.Node) map[string]string {
	attrs := map[string]string{}
	for _, a := range n.ChildrenOf("Attribute") {
		if name, ok := a.Attrs["Name"]; ok {
			attrs[name] = a.Text
		}
	}
	return attrs
}

// --- small field helpers -------------------------------------------------

func requireChild(n xmlnode.Node, tag, parentPath string) (xmlnode.Node, error) {
	c, err := n.RequireChild(tag)
	if err != nil {
		return xmlnode.Node{}, generrors.Wrap(err, generrors.XMLSyntax, parentPath+"."+tag)
	}
	return c, nil
}

func text(n xmlnode.Node, tag, parentPath string) (string, error) {
	c, err := requireChild(n, tag, parentPath)
	if err != nil {
		return "", err
	}
	t, err := c.RequireText()
	if err != nil {
		return "", generrors.Wrap(err, generrors.XMLSyntax, parentPath+"."+tag)
	}
	return t, nil
}

func hexField(n xmlnode.Node, tag, parentPath string) (model.Address, error) {
	t, err := text(n, tag, parentPath)
	if err != nil {
		return model.Invalid, err
	}
	return ingest.ParseHex(parentPath+"."+tag, t)
}

func uintField(n xmlnode.Node, tag, parentPath string) (uint32, error) {
	t, err := text(n, tag, parentPath)
	if err != nil {
		return 0, err
	}
	return ingest.ParseRequiredUint32(parentPath+"."+tag, t)
}
