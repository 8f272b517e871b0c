package hdlport

// TieOff says why a port is absent from a configuration and what it is
// driven with instead.
type TieOff struct {
	Reason string
	Value  string
}

// TieOffs maps port names, or the connection names given in port comments,
// to their tie-off.
type TieOffs map[string]TieOff

// DefaultTieOffs describes the ports that are unused in a machine-mode-only
// core without FPU, debug, MMU, atomics or accelerator support.
var DefaultTieOffs = TieOffs{
	"flush_bp_i":     {"For any HW configuration", "zero"},
	"set_debug_pc_i": {"As debug is disabled", "zero"},
	"debug_mode_i":   {"As debug is disabled", "zero"},
	"debug_req_i":    {"As debug is disabled", "zero"},
	"priv_lvl_i":     {"As privilege mode is machine mode only", "Machine mode"},
	"fs_i":           {"As FPU is not present", "zero"},
	"frm_i":          {"As FPU is not present", "zero"},
	"vs_i":           {"As vector extension is not present", "zero"},
	"ACC_DISPATCHER": {"As Accelerate port is not supported", "zero"},
	"PERF_COUNTERS":  {"As performance counters are not supported", "zero"},
	"RVFI":           {"As RVFI is not implemented", "zero"},

	"fpu_valid_o":     {"As FPU is not present", "zero"},
	"fpu_ready_o":     {"As FPU is not present", "zero"},
	"fpu_fmt_o":       {"As FPU is not present", "zero"},
	"fpu_rm_o":        {"As FPU is not present", "zero"},
	"fpu_valid_i":     {"As FPU is not present", "zero"},
	"fpu_fmt_i":       {"As FPU is not present", "zero"},
	"fpu_rm_i":        {"As FPU is not present", "zero"},
	"fpu_frm_i":       {"As FPU is not present", "zero"},
	"fpu_prec_i":      {"As FPU is not present", "zero"},
	"fpu_trans_id_o":  {"As FPU is not present", "zero"},
	"fpu_result_o":    {"As FPU is not present", "zero"},
	"fpu_exception_o": {"As FPU is not present", "zero"},

	"amo_req_o":          {"As A extension is disabled", "zero"},
	"amo_resp_i":         {"As A extension is disabled", "zero"},
	"amo_valid_commit_i": {"As A extension is disabled", "zero"},
	"flush_tlb_i":        {"As MMU is not present", "zero"},
	"ld_st_priv_lvl_i":   {"As privilege mode is machine mode only", "zero"},
}

// lookup finds the tie-off for a port, preferring its connection.
func (t TieOffs) lookup(port Port) (TieOff, bool) {
	if to, ok := t[port.Connection]; ok {
		return to, true
	}
	to, ok := t[port.Name]
	return to, ok
}
