package filelog

// Sink is anything that can log a message at an arbitrary severity.
type Sink interface {
	Log(level Severity, msg interface{}, ctx Fields) error
}

// Interface is the full logging contract: the generic Log entry point plus one
// method per severity. *Logger, Facade and Nop all satisfy it.
type Interface interface {
	Sink
	Emergency(msg interface{}, ctx ...Fields) error
	Alert(msg interface{}, ctx ...Fields) error
	Critical(msg interface{}, ctx ...Fields) error
	Error(msg interface{}, ctx ...Fields) error
	Warning(msg interface{}, ctx ...Fields) error
	Notice(msg interface{}, ctx ...Fields) error
	Info(msg interface{}, ctx ...Fields) error
	Debug(msg interface{}, ctx ...Fields) error
}

// Adapter is the narrow capability callers depend on when they only need to
// report progress and problems. Any Interface satisfies it, which lets callers
// swap backends without touching the core Logger.
type Adapter interface {
	Info(msg interface{}, ctx ...Fields) error
	Warning(msg interface{}, ctx ...Fields) error
	Error(msg interface{}, ctx ...Fields) error
}

// Facade supplies the eight severity methods on top of any Sink. Embed it in a
// type that only implements Log to obtain the full Interface:
//
//	type backend struct {
//		filelog.Facade
//	}
//
//	b := &backend{}
//	b.Facade = filelog.Facade{Sink: sinkImpl}
type Facade struct {
	Sink
}

// Emergency forwards to Log with EmergencyIssuer.
func (f Facade) Emergency(msg interface{}, ctx ...Fields) error {
	return f.Log(EmergencyIssuer, msg, mergeFields(ctx))
}

// Alert forwards to Log with AlertIssuer.
func (f Facade) Alert(msg interface{}, ctx ...Fields) error {
	return f.Log(AlertIssuer, msg, mergeFields(ctx))
}

// Critical forwards to Log with CriticalIssuer.
func (f Facade) Critical(msg interface{}, ctx ...Fields) error {
	return f.Log(CriticalIssuer, msg, mergeFields(ctx))
}

// Error forwards to Log with ErrorIssuer.
func (f Facade) Error(msg interface{}, ctx ...Fields) error {
	return f.Log(ErrorIssuer, msg, mergeFields(ctx))
}

// Warning forwards to Log with WarningIssuer.
func (f Facade) Warning(msg interface{}, ctx ...Fields) error {
	return f.Log(WarningIssuer, msg, mergeFields(ctx))
}

// Notice forwards to Log with NoticeIssuer.
func (f Facade) Notice(msg interface{}, ctx ...Fields) error {
	return f.Log(NoticeIssuer, msg, mergeFields(ctx))
}

// Info forwards to Log with InfoIssuer.
func (f Facade) Info(msg interface{}, ctx ...Fields) error {
	return f.Log(InfoIssuer, msg, mergeFields(ctx))
}

// Debug forwards to Log with DebugIssuer.
func (f Facade) Debug(msg interface{}, ctx ...Fields) error {
	return f.Log(DebugIssuer, msg, mergeFields(ctx))
}

// Nop discards every record. Unknown severities are still rejected so that
// swapping a real backend in never surfaces new caller errors.
type Nop struct{}

// Log validates level and discards the record.
func (Nop) Log(level Severity, _ interface{}, _ Fields) error {
	_, err := Priority(level)
	return err
}

// Emergency discards the record.
func (n Nop) Emergency(msg interface{}, ctx ...Fields) error { return n.Log(EmergencyIssuer, msg, nil) }

// Alert discards the record.
func (n Nop) Alert(msg interface{}, ctx ...Fields) error { return n.Log(AlertIssuer, msg, nil) }

// Critical discards the record.
func (n Nop) Critical(msg interface{}, ctx ...Fields) error { return n.Log(CriticalIssuer, msg, nil) }

// Error discards the record.
func (n Nop) Error(msg interface{}, ctx ...Fields) error { return n.Log(ErrorIssuer, msg, nil) }

// Warning discards the record.
func (n Nop) Warning(msg interface{}, ctx ...Fields) error { return n.Log(WarningIssuer, msg, nil) }

// Notice discards the record.
func (n Nop) Notice(msg interface{}, ctx ...Fields) error { return n.Log(NoticeIssuer, msg, nil) }

// Info discards the record.
func (n Nop) Info(msg interface{}, ctx ...Fields) error { return n.Log(InfoIssuer, msg, nil) }

// Debug discards the record.
func (n Nop) Debug(msg interface{}, ctx ...Fields) error { return n.Log(DebugIssuer, msg, nil) }

// Aware holds an injectable logger. Embed it in components that accept a
// logger after construction.
type Aware struct {
	logger Interface
}

// SetLogger injects the logger used by the embedding component.
func (a *Aware) SetLogger(logger Interface) {
	a.logger = logger
}

// Logger returns the injected logger, or Nop if none was set.
func (a *Aware) Logger() Interface {
	if a.logger == nil {
		return Nop{}
	}
	return a.logger
}

// mergeFields folds several context maps into one; later keys win.
func mergeFields(ctx []Fields) Fields {
	switch len(ctx) {
	case 0:
		return nil
	case 1:
		return ctx[0]
	}
	out := make(Fields)
	for _, f := range ctx {
		for k, v := range f {
			out[k] = v
		}
	}
	return out
}
