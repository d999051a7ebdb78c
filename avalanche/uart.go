package avalanche

// UART bridge (C9). The register bank for each UART window is never
// touched: every MMIO access in [base, base+32) is translated to a port
// number and delegated to CpuOps, matching the "shadow only" note in
// spec section 3 (real state lives in the external UART model).
//
// Dispatch for this bank kind lives in mmio.go: Load32/Store32 route
// through the generic word switch's kindUART case, while Load16/Load8/
// Store16/Store8 special-case kindUART before falling through to that
// same word path for non-UART banks.
