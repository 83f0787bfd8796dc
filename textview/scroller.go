package textview

// autoScroller scrolls the view while the pointer rests in a trigger margin
// and keeps extending the selection toward the last pointer position.
// It exists only while auto-scrolling is active.
type autoScroller struct {
	selection *Selection
	forward   bool
	x, y      int
	token     TimerToken
	stopped   bool
}

func newAutoScroller(s *Selection, forward bool, x, y int) *autoScroller {
	sc := &autoScroller{selection: s, forward: forward, x: x, y: y}
	sc.token = s.app.AddTimerTask(sc.tick, s.scrollPeriod)
	return sc
}

func (sc *autoScroller) setXY(x, y int) {
	sc.x = x
	sc.y = y
}

func (sc *autoScroller) tick() {
	if sc.stopped {
		return
	}
	s := sc.selection
	s.view.ScrollPage(sc.forward, ScrollLines, s.scrollLines)
	s.view.PreparePaintInfo()
	s.ExpandTo(sc.x, sc.y)
	widget := s.app.Widget()
	widget.Reset()
	widget.Repaint()
}

func (sc *autoScroller) stop() {
	if sc.stopped {
		return
	}
	sc.stopped = true
	sc.selection.app.RemoveTimerTask(sc.token)
	sc.selection.logger.Debug("auto-scroll stopped", "forward", sc.forward)
}
