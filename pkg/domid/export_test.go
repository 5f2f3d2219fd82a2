package domid

// SwapSourceForTest installs src as if no identifier had been drawn yet and
// returns a func that restores the previous source and draw state.
func SwapSourceForTest(src Source) (restore func()) {
	setMu.Lock()
	defer setMu.Unlock()
	prev, prevDrawn := active.Load(), drawn.Load()
	active.Store(&sourceBox{src: src})
	drawn.Store(false)
	return func() {
		setMu.Lock()
		defer setMu.Unlock()
		active.Store(prev)
		drawn.Store(prevDrawn)
	}
}
