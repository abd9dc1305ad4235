// Package script runs Lua programs against the calculator.
//
// Scripts run in a gopher-lua state with only the base, table, string and
// math libraries; dofile, loadfile, load and loadstring are removed. A
// global calc table drives the engine:
//
//	calc.press("2", "+", "3", "=")  -- returns the display
//	calc.enter("12.5 × 2 =")        -- batch tokens, returns the display
//	calc.display()
//	calc.history()
//	calc.is_error()
//	calc.clear()
//
// print writes to the host's output writer.
package script
