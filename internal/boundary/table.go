package boundary

import (
	"fmt"
	"sort"
	"strings"
	"unsafe"

	"github.com/jmylchreest/hermes/internal/hermes"
	"github.com/jmylchreest/hermes/internal/ontology"
)

// Kind classifies exported symbols.
type Kind string

// Symbol kinds.
const (
	KindAdmin       Kind = "admin"
	KindAccessor    Kind = "accessor"
	KindFacadeDrop  Kind = "facade_drop"
	KindPublish     Kind = "publish"
	KindSubscribe   Kind = "subscribe"
	KindMessageDrop Kind = "message_drop"
)

type facadeCloser interface {
	Close() error
}

// Domain is a facade that can be obtained from a protocol handler.
type Domain struct {
	Name string
	open func(*hermes.Handler) facadeCloser
}

// AccessorSymbol is the exported name of the function returning the facade.
func (d Domain) AccessorSymbol() string {
	return "hermes_protocol_handler_" + d.Name + "_facade"
}

// DropSymbol is the exported name of the facade destructor.
func (d Domain) DropSymbol() string {
	return "hermes_drop_" + d.Name + "_facade"
}

func domainOf[F facadeCloser](name string, open func(*hermes.Handler) F) Domain {
	return Domain{
		Name: name,
		open: func(h *hermes.Handler) facadeCloser { return open(h) },
	}
}

type (
	publishFunc   func(f facadeCloser, filters []string, msg unsafe.Pointer) error
	subscribeFunc func(f facadeCloser, filters []string, deliver func(any)) error
)

// Operation is one publish or subscribe function of a domain.
type Operation struct {
	Domain  string
	Name    string
	Filters []string
	Message string

	publish   publishFunc
	subscribe subscribeFunc
}

// Symbol is the exported name of the operation.
func (o Operation) Symbol() string {
	return "hermes_" + o.Domain + "_" + o.Name
}

// Kind reports whether the operation publishes or subscribes.
func (o Operation) Kind() Kind {
	if o.subscribe != nil {
		return KindSubscribe
	}
	return KindPublish
}

func facadeAs[F any](f facadeCloser) (*F, error) {
	fac, ok := any(f).(*F)
	if !ok {
		return nil, fmt.Errorf("%w: %T is not a %T", ErrWrongHandle, f, (*F)(nil))
	}
	return fac, nil
}

func publishOf[F, M any](fn func(*F, *M) error) publishFunc {
	return func(f facadeCloser, _ []string, p unsafe.Pointer) error {
		fac, err := facadeAs[F](f)
		if err != nil {
			return err
		}
		msg := new(M)
		if err := decodeMessage(p, msg); err != nil {
			return err
		}
		return fn(fac, msg)
	}
}

func publishFilteredOf[F, M any](fn func(*F, string, *M) error) publishFunc {
	return func(f facadeCloser, filters []string, p unsafe.Pointer) error {
		fac, err := facadeAs[F](f)
		if err != nil {
			return err
		}
		msg := new(M)
		if err := decodeMessage(p, msg); err != nil {
			return err
		}
		return fn(fac, filters[0], msg)
	}
}

func publishEmptyOf[F any](fn func(*F) error) publishFunc {
	return func(f facadeCloser, _ []string, _ unsafe.Pointer) error {
		fac, err := facadeAs[F](f)
		if err != nil {
			return err
		}
		return fn(fac)
	}
}

func subscribeOf[F, M any](fn func(*F, hermes.Callback[M]) error) subscribeFunc {
	return func(f facadeCloser, _ []string, deliver func(any)) error {
		fac, err := facadeAs[F](f)
		if err != nil {
			return err
		}
		return fn(fac, func(msg *M) { deliver(msg) })
	}
}

func subscribeFilteredOf[F, M any](fn func(*F, string, hermes.Callback[M]) error) subscribeFunc {
	return func(f facadeCloser, filters []string, deliver func(any)) error {
		fac, err := facadeAs[F](f)
		if err != nil {
			return err
		}
		return fn(fac, filters[0], func(msg *M) { deliver(msg) })
	}
}

func pub(domain, name, message string, fn publishFunc, filters ...string) Operation {
	return Operation{Domain: domain, Name: name, Filters: filters, Message: message, publish: fn}
}

func sub(domain, name, message string, fn subscribeFunc, filters ...string) Operation {
	return Operation{Domain: domain, Name: name, Filters: filters, Message: message, subscribe: fn}
}

type component[F any] interface {
	*F
	PublishVersionRequest() error
	SubscribeVersion(hermes.Callback[ontology.VersionMessage]) error
	SubscribeError(hermes.Callback[ontology.ErrorMessage]) error
}

// componentOps are the version and error operations shared by every
// component facade.
func componentOps[F any, PF component[F]](domain string) []Operation {
	return []Operation{
		pub(domain, "publish_version_request", "", publishEmptyOf(func(f *F) error {
			return PF(f).PublishVersionRequest()
		})),
		sub(domain, "subscribe_version", "version", subscribeOf(func(f *F, cb hermes.Callback[ontology.VersionMessage]) error {
			return PF(f).SubscribeVersion(cb)
		})),
		sub(domain, "subscribe_error", "error", subscribeOf(func(f *F, cb hermes.Callback[ontology.ErrorMessage]) error {
			return PF(f).SubscribeError(cb)
		})),
	}
}

type (
	hotwordF              = hermes.HotwordFacade
	hotwordBackendF       = hermes.HotwordBackendFacade
	soundFeedbackF        = hermes.SoundFeedbackFacade
	soundFeedbackBackendF = hermes.SoundFeedbackBackendFacade
	asrF                  = hermes.AsrFacade
	asrBackendF           = hermes.AsrBackendFacade
	ttsF                  = hermes.TtsFacade
	ttsBackendF           = hermes.TtsBackendFacade
	nluF                  = hermes.NluFacade
	nluBackendF           = hermes.NluBackendFacade
	audioServerF          = hermes.AudioServerFacade
	audioServerBackendF   = hermes.AudioServerBackendFacade
	dialogueF             = hermes.DialogueFacade
	dialogueBackendF      = hermes.DialogueBackendFacade
	injectionF            = hermes.InjectionFacade
	injectionBackendF     = hermes.InjectionBackendFacade
)

var domains = []Domain{
	domainOf("hotword", (*hermes.Handler).HotwordFacade),
	domainOf("hotword_backend", (*hermes.Handler).HotwordBackendFacade),
	domainOf("sound_feedback", (*hermes.Handler).SoundFeedbackFacade),
	domainOf("sound_feedback_backend", (*hermes.Handler).SoundFeedbackBackendFacade),
	domainOf("asr", (*hermes.Handler).AsrFacade),
	domainOf("asr_backend", (*hermes.Handler).AsrBackendFacade),
	domainOf("tts", (*hermes.Handler).TtsFacade),
	domainOf("tts_backend", (*hermes.Handler).TtsBackendFacade),
	domainOf("nlu", (*hermes.Handler).NluFacade),
	domainOf("nlu_backend", (*hermes.Handler).NluBackendFacade),
	domainOf("audio_server", (*hermes.Handler).AudioServerFacade),
	domainOf("audio_server_backend", (*hermes.Handler).AudioServerBackendFacade),
	domainOf("dialogue", (*hermes.Handler).DialogueFacade),
	domainOf("dialogue_backend", (*hermes.Handler).DialogueBackendFacade),
	domainOf("injection", (*hermes.Handler).InjectionFacade),
	domainOf("injection_backend", (*hermes.Handler).InjectionBackendFacade),
}

var operations = concat(
	[]Operation{
		sub("hotword", "subscribe_detected", "hotword_detected", subscribeFilteredOf((*hotwordF).SubscribeDetected), "hotword_id"),
		sub("hotword", "subscribe_all_detected", "hotword_detected", subscribeOf((*hotwordF).SubscribeAllDetected)),
	},
	componentOps[hotwordF]("hotword"),
	[]Operation{
		pub("hotword_backend", "publish_detected", "hotword_detected", publishFilteredOf((*hotwordBackendF).PublishDetected), "hotword_id"),

		pub("sound_feedback", "publish_toggle_on", "site", publishOf((*soundFeedbackF).PublishToggleOn)),
		pub("sound_feedback", "publish_toggle_off", "site", publishOf((*soundFeedbackF).PublishToggleOff)),

		sub("sound_feedback_backend", "subscribe_toggle_on", "site", subscribeOf((*soundFeedbackBackendF).SubscribeToggleOn)),
		sub("sound_feedback_backend", "subscribe_toggle_off", "site", subscribeOf((*soundFeedbackBackendF).SubscribeToggleOff)),

		pub("asr", "publish_start_listening", "asr_start_listening", publishOf((*asrF).PublishStartListening)),
		pub("asr", "publish_stop_listening", "site", publishOf((*asrF).PublishStopListening)),
		sub("asr", "subscribe_text_captured", "text_captured", subscribeOf((*asrF).SubscribeTextCaptured)),
		sub("asr", "subscribe_partial_text_captured", "text_captured", subscribeOf((*asrF).SubscribePartialTextCaptured)),
	},
	componentOps[asrF]("asr"),
	[]Operation{
		sub("asr_backend", "subscribe_start_listening", "asr_start_listening", subscribeOf((*asrBackendF).SubscribeStartListening)),
		sub("asr_backend", "subscribe_stop_listening", "site", subscribeOf((*asrBackendF).SubscribeStopListening)),
		pub("asr_backend", "publish_text_captured", "text_captured", publishOf((*asrBackendF).PublishTextCaptured)),
		pub("asr_backend", "publish_partial_text_captured", "text_captured", publishOf((*asrBackendF).PublishPartialTextCaptured)),

		pub("tts", "publish_say", "say", publishOf((*ttsF).PublishSay)),
		sub("tts", "subscribe_say_finished", "say_finished", subscribeOf((*ttsF).SubscribeSayFinished)),
	},
	componentOps[ttsF]("tts"),
	[]Operation{
		sub("tts_backend", "subscribe_say", "say", subscribeOf((*ttsBackendF).SubscribeSay)),
		pub("tts_backend", "publish_say_finished", "say_finished", publishOf((*ttsBackendF).PublishSayFinished)),

		pub("nlu", "publish_query", "nlu_query", publishOf((*nluF).PublishQuery)),
		pub("nlu", "publish_partial_query", "nlu_slot_query", publishOf((*nluF).PublishPartialQuery)),
		sub("nlu", "subscribe_slot_parsed", "nlu_slot", subscribeOf((*nluF).SubscribeSlotParsed)),
		sub("nlu", "subscribe_intent_parsed", "nlu_intent", subscribeOf((*nluF).SubscribeIntentParsed)),
		sub("nlu", "subscribe_intent_not_recognized", "nlu_intent_not_recognized", subscribeOf((*nluF).SubscribeIntentNotRecognized)),
	},
	componentOps[nluF]("nlu"),
	[]Operation{
		sub("nlu_backend", "subscribe_query", "nlu_query", subscribeOf((*nluBackendF).SubscribeQuery)),
		sub("nlu_backend", "subscribe_partial_query", "nlu_slot_query", subscribeOf((*nluBackendF).SubscribePartialQuery)),
		pub("nlu_backend", "publish_slot_parsed", "nlu_slot", publishOf((*nluBackendF).PublishSlotParsed)),
		pub("nlu_backend", "publish_intent_parsed", "nlu_intent", publishOf((*nluBackendF).PublishIntentParsed)),
		pub("nlu_backend", "publish_intent_not_recognized", "nlu_intent_not_recognized", publishOf((*nluBackendF).PublishIntentNotRecognized)),

		pub("audio_server", "publish_play_bytes", "play_bytes", publishOf((*audioServerF).PublishPlayBytes)),
		sub("audio_server", "subscribe_play_finished", "play_finished", subscribeFilteredOf((*audioServerF).SubscribePlayFinished), "site_id"),
		sub("audio_server", "subscribe_all_play_finished", "play_finished", subscribeOf((*audioServerF).SubscribeAllPlayFinished)),
		sub("audio_server", "subscribe_audio_frame", "audio_frame", subscribeFilteredOf((*audioServerF).SubscribeAudioFrame), "site_id"),
	},
	componentOps[audioServerF]("audio_server"),
	[]Operation{
		sub("audio_server_backend", "subscribe_play_bytes", "play_bytes", subscribeFilteredOf((*audioServerBackendF).SubscribePlayBytes), "site_id"),
		sub("audio_server_backend", "subscribe_all_play_bytes", "play_bytes", subscribeOf((*audioServerBackendF).SubscribeAllPlayBytes)),
		pub("audio_server_backend", "publish_play_finished", "play_finished", publishOf((*audioServerBackendF).PublishPlayFinished)),
		pub("audio_server_backend", "publish_audio_frame", "audio_frame", publishOf((*audioServerBackendF).PublishAudioFrame)),

		sub("dialogue", "subscribe_session_queued", "session_queued", subscribeOf((*dialogueF).SubscribeSessionQueued)),
		sub("dialogue", "subscribe_session_started", "session_started", subscribeOf((*dialogueF).SubscribeSessionStarted)),
		sub("dialogue", "subscribe_intent", "intent", subscribeFilteredOf((*dialogueF).SubscribeIntent), "intent_name"),
		sub("dialogue", "subscribe_intents", "intent", subscribeOf((*dialogueF).SubscribeIntents)),
		sub("dialogue", "subscribe_intent_not_recognized", "intent_not_recognized", subscribeOf((*dialogueF).SubscribeIntentNotRecognized)),
		sub("dialogue", "subscribe_session_ended", "session_ended", subscribeOf((*dialogueF).SubscribeSessionEnded)),
		pub("dialogue", "publish_start_session", "start_session", publishOf((*dialogueF).PublishStartSession)),
		pub("dialogue", "publish_continue_session", "continue_session", publishOf((*dialogueF).PublishContinueSession)),
		pub("dialogue", "publish_end_session", "end_session", publishOf((*dialogueF).PublishEndSession)),
	},
	componentOps[dialogueF]("dialogue"),
	[]Operation{
		pub("dialogue_backend", "publish_session_queued", "session_queued", publishOf((*dialogueBackendF).PublishSessionQueued)),
		pub("dialogue_backend", "publish_session_started", "session_started", publishOf((*dialogueBackendF).PublishSessionStarted)),
		pub("dialogue_backend", "publish_intent", "intent", publishOf((*dialogueBackendF).PublishIntent)),
		pub("dialogue_backend", "publish_intent_not_recognized", "intent_not_recognized", publishOf((*dialogueBackendF).PublishIntentNotRecognized)),
		pub("dialogue_backend", "publish_session_ended", "session_ended", publishOf((*dialogueBackendF).PublishSessionEnded)),
		sub("dialogue_backend", "subscribe_start_session", "start_session", subscribeOf((*dialogueBackendF).SubscribeStartSession)),
		sub("dialogue_backend", "subscribe_continue_session", "continue_session", subscribeOf((*dialogueBackendF).SubscribeContinueSession)),
		sub("dialogue_backend", "subscribe_end_session", "end_session", subscribeOf((*dialogueBackendF).SubscribeEndSession)),

		pub("injection", "publish_injection_request", "injection_request", publishOf((*injectionF).PublishInjectionRequest)),
		pub("injection", "publish_injection_status_request", "", publishEmptyOf((*injectionF).PublishInjectionStatusRequest)),
		sub("injection", "subscribe_injection_status", "injection_status", subscribeOf((*injectionF).SubscribeInjectionStatus)),
	},
	componentOps[injectionF]("injection"),
	[]Operation{
		sub("injection_backend", "subscribe_injection_request", "injection_request", subscribeOf((*injectionBackendF).SubscribeInjectionRequest)),
		pub("injection_backend", "publish_injection_status", "injection_status", publishOf((*injectionBackendF).PublishInjectionStatus)),
	},
)

// messageKinds are the payload types handed to callbacks, each with a
// hermes_drop_<kind>_message destructor.
var messageKinds = []string{
	"site", "hotword_detected", "asr_start_listening", "text_captured",
	"say", "say_finished", "nlu_query", "nlu_slot_query", "nlu_slot",
	"nlu_intent", "nlu_intent_not_recognized", "play_bytes", "play_finished",
	"audio_frame", "intent", "intent_not_recognized", "start_session",
	"continue_session", "end_session", "session_started", "session_queued",
	"session_ended", "injection_request", "injection_status", "version", "error",
}

// MessageDropSymbol is the exported name of the destructor of a message kind.
func MessageDropSymbol(kind string) string {
	return "hermes_drop_" + kind + "_message"
}

var (
	domainByName = make(map[string]*Domain, len(domains))
	opBySymbol   = make(map[string]*Operation, len(operations))
)

func init() {
	for i := range domains {
		domainByName[domains[i].Name] = &domains[i]
	}
	for i := range operations {
		op := &operations[i]
		if _, ok := domainByName[op.Domain]; !ok {
			panic("boundary: operation " + op.Symbol() + " has no domain")
		}
		if _, dup := opBySymbol[op.Symbol()]; dup {
			panic("boundary: duplicate operation " + op.Symbol())
		}
		opBySymbol[op.Symbol()] = op
	}
}

func concat(groups ...[]Operation) []Operation {
	var out []Operation
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}

// Domains returns the facade domains in declaration order.
func Domains() []Domain {
	return append([]Domain(nil), domains...)
}

// Operations returns every publish and subscribe operation.
func Operations() []Operation {
	return append([]Operation(nil), operations...)
}

// MessageKinds returns the payload kinds that have a destructor.
func MessageKinds() []string {
	return append([]string(nil), messageKinds...)
}

// Symbol describes one exported function.
type Symbol struct {
	Name      string `json:"name" yaml:"name"`
	Kind      Kind   `json:"kind" yaml:"kind"`
	Domain    string `json:"domain,omitempty" yaml:"domain,omitempty"`
	Message   string `json:"message,omitempty" yaml:"message,omitempty"`
	Signature string `json:"signature" yaml:"signature"`
}

var adminSymbols = []Symbol{
	{Name: "hermes_protocol_handler_new", Kind: KindAdmin,
		Signature: "HERMES_RESULT hermes_protocol_handler_new(const CProtocolHandler **handler, const char *bus_url, void *user_data)"},
	{Name: "hermes_protocol_handler_new_with_options", Kind: KindAdmin,
		Signature: "HERMES_RESULT hermes_protocol_handler_new_with_options(const CProtocolHandler **handler, const char *toml_options, void *user_data)"},
	{Name: "hermes_protocol_handler_new_from_config", Kind: KindAdmin,
		Signature: "HERMES_RESULT hermes_protocol_handler_new_from_config(const CProtocolHandler **handler, const char *config_path, void *user_data)"},
	{Name: "hermes_destroy_protocol_handler", Kind: KindAdmin,
		Signature: "HERMES_RESULT hermes_destroy_protocol_handler(const CProtocolHandler *handler)"},
	{Name: "hermes_enable_debug_logs", Kind: KindAdmin,
		Signature: "HERMES_RESULT hermes_enable_debug_logs(void)"},
	{Name: "hermes_get_last_error", Kind: KindAdmin,
		Signature: "HERMES_RESULT hermes_get_last_error(const char **error)"},
	{Name: "hermes_destroy_string", Kind: KindAdmin,
		Signature: "HERMES_RESULT hermes_destroy_string(char *string)"},
}

// Symbols lists every exported function, sorted by name.
func Symbols() []Symbol {
	out := append([]Symbol(nil), adminSymbols...)

	for _, d := range domains {
		out = append(out,
			Symbol{
				Name:      d.AccessorSymbol(),
				Kind:      KindAccessor,
				Domain:    d.Name,
				Signature: fmt.Sprintf("HERMES_RESULT %s(const CProtocolHandler *handler, const CFacade **facade)", d.AccessorSymbol()),
			},
			Symbol{
				Name:      d.DropSymbol(),
				Kind:      KindFacadeDrop,
				Domain:    d.Name,
				Signature: fmt.Sprintf("HERMES_RESULT %s(const CFacade *facade)", d.DropSymbol()),
			},
		)
	}

	for _, op := range operations {
		params := []string{"const CFacade *facade"}
		for _, f := range op.Filters {
			params = append(params, "const char *"+f)
		}
		switch {
		case op.Kind() == KindSubscribe:
			params = append(params, "hermes_callback handler")
		case op.Message != "":
			params = append(params, "const char *message")
		}
		out = append(out, Symbol{
			Name:      op.Symbol(),
			Kind:      op.Kind(),
			Domain:    op.Domain,
			Message:   op.Message,
			Signature: fmt.Sprintf("HERMES_RESULT %s(%s)", op.Symbol(), strings.Join(params, ", ")),
		})
	}

	for _, m := range messageKinds {
		out = append(out, Symbol{
			Name:      MessageDropSymbol(m),
			Kind:      KindMessageDrop,
			Message:   m,
			Signature: fmt.Sprintf("HERMES_RESULT %s(const char *message)", MessageDropSymbol(m)),
		})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
