// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

package emit

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"rmegen/internal/generrors"
	"rmegen/internal/model"
)

// BootCapabilityScript writes the generated source that creates every
// kernel object at boot in global-ID order — capability tables, processes,
// threads, invocations, receive endpoints — then delegates ports, sends,
// and vector endpoints (spec §4.7 group 3, §6). The creation order matters:
// later objects may reference earlier ones by the global ID just minted.
func BootCapabilityScript(t *Tree, proj *model.Project) (string, error) {
	var b strings.Builder
	fmt.Fprintln(&b, "/* Boot capability script, generated by rmegen. */")
	fmt.Fprintln(&b, "#include \"rme.h\"")
	fmt.Fprintln(&b)
	fmt.Fprintln(&b, "void Boot_Create_Capabilities(void)")
	fmt.Fprintln(&b, "{")

	for _, p := range proj.Processes {
		fmt.Fprintf(&b, "    RME_Boot_Create_Captbl(%d, %d); /* %s */\n", p.CaptblGlobalID, p.CaptblFrontier+int(p.ExtraCaptbl), p.Name)
	}
	for _, p := range proj.Processes {
		fmt.Fprintf(&b, "    RME_Boot_Create_Process(%d, %d); /* %s */\n", p.ProcessGlobalID, p.CaptblGlobalID, p.Name)
	}
	for _, p := range proj.Processes {
		for _, th := range p.Threads {
			fmt.Fprintf(&b, "    RME_Boot_Create_Thread(%d, %d, %d); /* %s.%s */\n", th.GlobalID, p.ProcessGlobalID, th.Priority, p.Name, th.Name)
		}
	}
	for _, p := range proj.Processes {
		for _, inv := range p.Invocations {
			fmt.Fprintf(&b, "    RME_Boot_Create_Invocation(%d, %d); /* %s.%s */\n", inv.GlobalID, p.ProcessGlobalID, p.Name, inv.Name)
		}
	}
	for _, p := range proj.Processes {
		for _, recv := range p.Receives {
			fmt.Fprintf(&b, "    RME_Boot_Create_Receive(%d, %d); /* %s.%s */\n", recv.GlobalID, p.ProcessGlobalID, p.Name, recv.Name)
		}
	}

	fmt.Fprintln(&b)
	fmt.Fprintln(&b, "    /* delegations */")
	for _, p := range proj.Processes {
		for _, port := range p.Ports {
			if port.GlobalID == model.UnassignedID {
				return "", generrors.New(generrors.Emission, fmt.Sprintf("Process[%s].Port[%s]", p.Name, port.Name), "port was never resolved to a global ID")
			}
			fmt.Fprintf(&b, "    RME_Boot_Delegate(%d, %d, %d); /* %s.%s -> %s */\n", p.CaptblGlobalID, port.LocalID, port.GlobalID, p.Name, port.Name, port.Target)
		}
		for _, s := range p.Sends {
			if s.GlobalID == model.UnassignedID {
				return "", generrors.New(generrors.Emission, fmt.Sprintf("Process[%s].Send[%s]", p.Name, s.Name), "send was never resolved to a global ID")
			}
			fmt.Fprintf(&b, "    RME_Boot_Delegate(%d, %d, %d); /* %s.%s -> %s */\n", p.CaptblGlobalID, s.LocalID, s.GlobalID, p.Name, s.Name, s.Target)
		}
		for _, v := range p.Vectors {
			fmt.Fprintf(&b, "    RME_Boot_Delegate(%d, %d, %d); /* %s.%s (IRQ %d) */\n", p.CaptblGlobalID, v.LocalID, v.GlobalID, p.Name, v.Name, v.InterruptNumber)
		}
	}

	fmt.Fprintln(&b, "}")

	path := filepath.Join(t.RMERoot, "Project", "boot_capabilities.c")
	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return "", generrors.Wrap(err, generrors.Emission, path)
	}
	return path, nil
}
