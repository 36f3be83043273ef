// Copyright © 2024 Jeff Berkowitz (pdxjjb@gmail.com)
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published
// by the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Affero General Public License for more details.

package main

import "testing"

func TestDecodeFields(t *testing.T) {
	cases := []struct {
		name string
		inst uint16
		want Instruction
	}{
		{
			name: "ADD R3, R1, R2",
			inst: 0x3312,
			want: Instruction{raw: 0x3312, opcode: OpADD, rd: 3, nzpMask: 3, rs: 1, rt: 2, imm8: 0x12},
		},
		{
			name: "BR N (100), imm 5",
			inst: 0x1405,
			want: Instruction{raw: 0x1405, opcode: OpBR, rd: 4, nzpMask: 4, rs: 0, rt: 5, imm8: 0x05},
		},
		{
			name: "CONST R1, 42",
			inst: 0x912A,
			want: Instruction{raw: 0x912A, opcode: OpCONST, rd: 1, nzpMask: 1, rs: 2, rt: 0xA, imm8: 0x2A},
		},
		{
			name: "RET",
			inst: 0xF000,
			want: Instruction{raw: 0xF000, opcode: OpRET, rd: 0, nzpMask: 0, rs: 0, rt: 0, imm8: 0},
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := decodeFields(c.inst)
			if *got != c.want {
				t.Errorf("decodeFields(0x%04X) = %+v, want %+v", c.inst, *got, c.want)
			}
		})
	}
}

func TestDecoderControlSignals(t *testing.T) {
	d := Decoder{}

	cases := []struct {
		name      string
		inst      uint16
		wantRFWE  bool
		wantMux   RFMux
		wantALU   ALUCtrl
		wantRet   bool
		wantMemRE bool
		wantMemWE bool
		wantBR    bool
		wantNZPWE bool
	}{
		{name: "NOP", inst: 0x0000},
		{name: "BR", inst: 0x1700, wantBR: true},
		{name: "CMP", inst: 0x2012, wantALU: ALUSub, wantNZPWE: true},
		{name: "ADD", inst: 0x3312, wantRFWE: true, wantMux: RFMuxALU, wantALU: ALUAdd},
		{name: "SUB", inst: 0x4312, wantRFWE: true, wantMux: RFMuxALU, wantALU: ALUSub},
		{name: "MUL", inst: 0x5312, wantRFWE: true, wantMux: RFMuxALU, wantALU: ALUMul},
		{name: "DIV", inst: 0x6312, wantRFWE: true, wantMux: RFMuxALU, wantALU: ALUDiv},
		{name: "LDR", inst: 0x7310, wantRFWE: true, wantMux: RFMuxLSU, wantMemRE: true},
		{name: "STR", inst: 0x8012, wantMemWE: true},
		{name: "CONST", inst: 0x912A, wantRFWE: true, wantMux: RFMuxImm},
		{name: "RET", inst: 0xF000, wantRet: true},
		{name: "unrecognized opcode treated as NOP", inst: 0xA123},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := d.Decode(c.inst)
			if got.rfWE != c.wantRFWE {
				t.Errorf("rfWE = %v, want %v", got.rfWE, c.wantRFWE)
			}
			if got.rfWE && got.rfMux != c.wantMux {
				t.Errorf("rfMux = %v, want %v", got.rfMux, c.wantMux)
			}
			if got.aluCtrl != c.wantALU {
				t.Errorf("aluCtrl = %v, want %v", got.aluCtrl, c.wantALU)
			}
			if got.ret != c.wantRet {
				t.Errorf("ret = %v, want %v", got.ret, c.wantRet)
			}
			if got.memRE != c.wantMemRE {
				t.Errorf("memRE = %v, want %v", got.memRE, c.wantMemRE)
			}
			if got.memWE != c.wantMemWE {
				t.Errorf("memWE = %v, want %v", got.memWE, c.wantMemWE)
			}
			if got.nextPCMux != c.wantBR {
				t.Errorf("nextPCMux = %v, want %v", got.nextPCMux, c.wantBR)
			}
			if got.nzpWE != c.wantNZPWE {
				t.Errorf("nzpWE = %v, want %v", got.nzpWE, c.wantNZPWE)
			}
		})
	}
}
