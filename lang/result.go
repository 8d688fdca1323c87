package lang

// RTResult threads value-or-signal through every evaluation call. At
// most one of Err, FuncReturn, LoopContinue and LoopBreak is active;
// loops consume the loop signals, function calls consume FuncReturn,
// and errors propagate all the way out.
type RTResult struct {
	Value        *Value
	Err          *RuntimeError
	FuncReturn   *Value
	LoopContinue bool
	LoopBreak    bool
}

func (r *RTResult) reset() {
	r.Value = nil
	r.Err = nil
	r.FuncReturn = nil
	r.LoopContinue = false
	r.LoopBreak = false
}

// Register absorbs a sub-result's signal state and yields its value.
func (r *RTResult) Register(res *RTResult) *Value {
	r.Err = res.Err
	r.FuncReturn = res.FuncReturn
	r.LoopContinue = res.LoopContinue
	r.LoopBreak = res.LoopBreak
	return res.Value
}

// Success finishes with a plain value, clearing any signal.
func (r *RTResult) Success(v *Value) *RTResult {
	r.reset()
	r.Value = v
	return r
}

// SuccessReturn signals a function return carrying v.
func (r *RTResult) SuccessReturn(v *Value) *RTResult {
	r.reset()
	r.FuncReturn = v
	return r
}

// SuccessContinue signals a loop continue.
func (r *RTResult) SuccessContinue() *RTResult {
	r.reset()
	r.LoopContinue = true
	return r
}

// SuccessBreak signals a loop break.
func (r *RTResult) SuccessBreak() *RTResult {
	r.reset()
	r.LoopBreak = true
	return r
}

// Failure finishes with an error.
func (r *RTResult) Failure(err *RuntimeError) *RTResult {
	r.reset()
	r.Err = err
	return r
}

// ShouldReturn reports whether any signal is active, meaning the caller
// must stop evaluating and forward this result.
func (r *RTResult) ShouldReturn() bool {
	return r.Err != nil || r.FuncReturn != nil || r.LoopContinue || r.LoopBreak
}
