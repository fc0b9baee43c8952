package animation

// Behavior 定义了动画消费者必须提供的回调
type Behavior interface {
	// OnUpdate 每帧调用，progress 已按反向标志调整，范围 [0,1]
	OnUpdate(progress float64)
	// OnFinish 进度到达 1 时调用
	OnFinish()
}

// Funcs 用函数实现 Behavior。Update 必填；Finish 为空时，结束时上报最终进度。
type Funcs struct {
	Update func(progress float64)
	Finish func()
}

func (f Funcs) OnUpdate(progress float64) { f.Update(progress) }

func (f Funcs) OnFinish() {
	if f.Finish != nil {
		f.Finish()
	}
}

// defaultFinish 为没有 Finish 的 Funcs 补上默认结束行为
type defaultFinish struct {
	Funcs
	anim *Animation
}

func (d *defaultFinish) OnFinish() { d.anim.reportFinal() }

// bind 校验 behavior 并返回动画实际使用的实现
func bind(a *Animation, behavior Behavior) (Behavior, bool) {
	switch b := behavior.(type) {
	case nil:
		return nil, false
	case Funcs:
		return bindFuncs(a, b)
	case *Funcs:
		if b == nil {
			return nil, false
		}
		return bindFuncs(a, *b)
	}
	return behavior, true
}

func bindFuncs(a *Animation, f Funcs) (Behavior, bool) {
	if f.Update == nil {
		return nil, false
	}
	if f.Finish == nil {
		return &defaultFinish{Funcs: f, anim: a}, true
	}
	return f, true
}
