package hermes

import (
	"github.com/jmylchreest/hermes/internal/ontology"
)

// HotwordFacade receives wake word detections.
type HotwordFacade struct{ componentFacade }

// HotwordFacade returns a new hotword facade.
func (h *Handler) HotwordFacade() *HotwordFacade {
	return &HotwordFacade{newComponent(h, "hotword", ontology.ComponentHotword)}
}

// SubscribeDetected receives detections of one hotword model.
func (f *HotwordFacade) SubscribeDetected(hotwordID string, cb Callback[ontology.HotwordDetectedMessage]) error {
	return subscribe(f.facade, ontology.HotwordDetectedTopic(hotwordID), cb)
}

// SubscribeAllDetected receives detections of every hotword model.
func (f *HotwordFacade) SubscribeAllDetected(cb Callback[ontology.HotwordDetectedMessage]) error {
	return subscribe(f.facade, ontology.HotwordDetectedTopic(""), cb)
}

// HotwordBackendFacade is used by wake word engines.
type HotwordBackendFacade struct{ componentBackendFacade }

// HotwordBackendFacade returns a new hotword backend facade.
func (h *Handler) HotwordBackendFacade() *HotwordBackendFacade {
	return &HotwordBackendFacade{newComponentBackend(h, "hotword_backend", ontology.ComponentHotword)}
}

// PublishDetected reports a detection of hotwordID.
func (f *HotwordBackendFacade) PublishDetected(hotwordID string, msg *ontology.HotwordDetectedMessage) error {
	return publish(f.facade, ontology.HotwordDetectedTopic(hotwordID), msg)
}

// SoundFeedbackFacade turns the feedback sounds of a site on or off.
type SoundFeedbackFacade struct{ *facade }

// SoundFeedbackFacade returns a new sound feedback facade.
func (h *Handler) SoundFeedbackFacade() *SoundFeedbackFacade {
	return &SoundFeedbackFacade{newFacade(h, "sound_feedback")}
}

// PublishToggleOn enables feedback sounds.
func (f *SoundFeedbackFacade) PublishToggleOn(msg *ontology.SiteMessage) error {
	return publish(f.facade, ontology.TopicSoundFeedbackToggleOn, msg)
}

// PublishToggleOff disables feedback sounds.
func (f *SoundFeedbackFacade) PublishToggleOff(msg *ontology.SiteMessage) error {
	return publish(f.facade, ontology.TopicSoundFeedbackToggleOff, msg)
}

// SoundFeedbackBackendFacade is used by components that play feedback sounds.
type SoundFeedbackBackendFacade struct{ *facade }

// SoundFeedbackBackendFacade returns a new sound feedback backend facade.
func (h *Handler) SoundFeedbackBackendFacade() *SoundFeedbackBackendFacade {
	return &SoundFeedbackBackendFacade{newFacade(h, "sound_feedback_backend")}
}

// SubscribeToggleOn receives feedback enable requests.
func (f *SoundFeedbackBackendFacade) SubscribeToggleOn(cb Callback[ontology.SiteMessage]) error {
	return subscribe(f.facade, ontology.TopicSoundFeedbackToggleOn, cb)
}

// SubscribeToggleOff receives feedback disable requests.
func (f *SoundFeedbackBackendFacade) SubscribeToggleOff(cb Callback[ontology.SiteMessage]) error {
	return subscribe(f.facade, ontology.TopicSoundFeedbackToggleOff, cb)
}

// AsrFacade drives speech recognition.
type AsrFacade struct{ componentFacade }

// AsrFacade returns a new speech recognition facade.
func (h *Handler) AsrFacade() *AsrFacade {
	return &AsrFacade{newComponent(h, "asr", ontology.ComponentAsr)}
}

// PublishStartListening asks the recognizer to listen on a site.
func (f *AsrFacade) PublishStartListening(msg *ontology.AsrStartListeningMessage) error {
	return publish(f.facade, ontology.TopicAsrStartListening, msg)
}

// PublishStopListening asks the recognizer to stop listening on a site.
func (f *AsrFacade) PublishStopListening(msg *ontology.SiteMessage) error {
	return publish(f.facade, ontology.TopicAsrStopListening, msg)
}

// SubscribeTextCaptured receives final transcriptions.
func (f *AsrFacade) SubscribeTextCaptured(cb Callback[ontology.TextCapturedMessage]) error {
	return subscribe(f.facade, ontology.TopicAsrTextCaptured, cb)
}

// SubscribePartialTextCaptured receives partial transcriptions.
func (f *AsrFacade) SubscribePartialTextCaptured(cb Callback[ontology.TextCapturedMessage]) error {
	return subscribe(f.facade, ontology.TopicAsrPartialTextCaptured, cb)
}

// AsrBackendFacade is used by speech recognizers.
type AsrBackendFacade struct{ componentBackendFacade }

// AsrBackendFacade returns a new speech recognition backend facade.
func (h *Handler) AsrBackendFacade() *AsrBackendFacade {
	return &AsrBackendFacade{newComponentBackend(h, "asr_backend", ontology.ComponentAsr)}
}

// SubscribeStartListening receives listen requests.
func (f *AsrBackendFacade) SubscribeStartListening(cb Callback[ontology.AsrStartListeningMessage]) error {
	return subscribe(f.facade, ontology.TopicAsrStartListening, cb)
}

// SubscribeStopListening receives stop requests.
func (f *AsrBackendFacade) SubscribeStopListening(cb Callback[ontology.SiteMessage]) error {
	return subscribe(f.facade, ontology.TopicAsrStopListening, cb)
}

// PublishTextCaptured reports a final transcription.
func (f *AsrBackendFacade) PublishTextCaptured(msg *ontology.TextCapturedMessage) error {
	return publish(f.facade, ontology.TopicAsrTextCaptured, msg)
}

// PublishPartialTextCaptured reports a partial transcription.
func (f *AsrBackendFacade) PublishPartialTextCaptured(msg *ontology.TextCapturedMessage) error {
	return publish(f.facade, ontology.TopicAsrPartialTextCaptured, msg)
}

// TtsFacade drives speech synthesis.
type TtsFacade struct{ componentFacade }

// TtsFacade returns a new speech synthesis facade.
func (h *Handler) TtsFacade() *TtsFacade {
	return &TtsFacade{newComponent(h, "tts", ontology.ComponentTts)}
}

// PublishSay asks for text to be spoken.
func (f *TtsFacade) PublishSay(msg *ontology.SayMessage) error {
	return publish(f.facade, ontology.TopicTtsSay, msg)
}

// SubscribeSayFinished receives the end of spoken texts.
func (f *TtsFacade) SubscribeSayFinished(cb Callback[ontology.SayFinishedMessage]) error {
	return subscribe(f.facade, ontology.TopicTtsSayFinished, cb)
}

// TtsBackendFacade is used by speech synthesizers.
type TtsBackendFacade struct{ componentBackendFacade }

// TtsBackendFacade returns a new speech synthesis backend facade.
func (h *Handler) TtsBackendFacade() *TtsBackendFacade {
	return &TtsBackendFacade{newComponentBackend(h, "tts_backend", ontology.ComponentTts)}
}

// SubscribeSay receives texts to speak.
func (f *TtsBackendFacade) SubscribeSay(cb Callback[ontology.SayMessage]) error {
	return subscribe(f.facade, ontology.TopicTtsSay, cb)
}

// PublishSayFinished reports that a text has been spoken.
func (f *TtsBackendFacade) PublishSayFinished(msg *ontology.SayFinishedMessage) error {
	return publish(f.facade, ontology.TopicTtsSayFinished, msg)
}

// NluFacade drives language understanding.
type NluFacade struct{ componentFacade }

// NluFacade returns a new language understanding facade.
func (h *Handler) NluFacade() *NluFacade {
	return &NluFacade{newComponent(h, "nlu", ontology.ComponentNlu)}
}

// PublishQuery asks for an input to be parsed into an intent.
func (f *NluFacade) PublishQuery(msg *ontology.NluQueryMessage) error {
	return publish(f.facade, ontology.TopicNluQuery, msg)
}

// PublishPartialQuery asks for a single slot to be parsed.
func (f *NluFacade) PublishPartialQuery(msg *ontology.NluSlotQueryMessage) error {
	return publish(f.facade, ontology.TopicNluPartialQuery, msg)
}

// SubscribeSlotParsed receives partial query answers.
func (f *NluFacade) SubscribeSlotParsed(cb Callback[ontology.NluSlotMessage]) error {
	return subscribe(f.facade, ontology.TopicNluSlotParsed, cb)
}

// SubscribeIntentParsed receives recognized intents.
func (f *NluFacade) SubscribeIntentParsed(cb Callback[ontology.NluIntentMessage]) error {
	return subscribe(f.facade, ontology.TopicNluIntentParsed, cb)
}

// SubscribeIntentNotRecognized receives queries that matched no intent.
func (f *NluFacade) SubscribeIntentNotRecognized(cb Callback[ontology.NluIntentNotRecognizedMessage]) error {
	return subscribe(f.facade, ontology.TopicNluIntentNotRecognized, cb)
}

// NluBackendFacade is used by language understanding engines.
type NluBackendFacade struct{ componentBackendFacade }

// NluBackendFacade returns a new language understanding backend facade.
func (h *Handler) NluBackendFacade() *NluBackendFacade {
	return &NluBackendFacade{newComponentBackend(h, "nlu_backend", ontology.ComponentNlu)}
}

// SubscribeQuery receives queries.
func (f *NluBackendFacade) SubscribeQuery(cb Callback[ontology.NluQueryMessage]) error {
	return subscribe(f.facade, ontology.TopicNluQuery, cb)
}

// SubscribePartialQuery receives slot queries.
func (f *NluBackendFacade) SubscribePartialQuery(cb Callback[ontology.NluSlotQueryMessage]) error {
	return subscribe(f.facade, ontology.TopicNluPartialQuery, cb)
}

// PublishSlotParsed answers a slot query.
func (f *NluBackendFacade) PublishSlotParsed(msg *ontology.NluSlotMessage) error {
	return publish(f.facade, ontology.TopicNluSlotParsed, msg)
}

// PublishIntentParsed answers a query with an intent.
func (f *NluBackendFacade) PublishIntentParsed(msg *ontology.NluIntentMessage) error {
	return publish(f.facade, ontology.TopicNluIntentParsed, msg)
}

// PublishIntentNotRecognized answers a query that matched nothing.
func (f *NluBackendFacade) PublishIntentNotRecognized(msg *ontology.NluIntentNotRecognizedMessage) error {
	return publish(f.facade, ontology.TopicNluIntentNotRecognized, msg)
}

// AudioServerFacade plays audio on sites and receives their captured frames.
type AudioServerFacade struct{ componentFacade }

// AudioServerFacade returns a new audio server facade.
func (h *Handler) AudioServerFacade() *AudioServerFacade {
	return &AudioServerFacade{newComponent(h, "audio_server", ontology.ComponentAudioServer)}
}

// PublishPlayBytes asks the site's audio server to play a WAV buffer.
func (f *AudioServerFacade) PublishPlayBytes(msg *ontology.PlayBytesMessage) error {
	if msg == nil {
		return publish[ontology.PlayBytesMessage](f.facade, ontology.PlayBytesTopic("", ""), nil)
	}
	return publish(f.facade, ontology.PlayBytesTopic(msg.SiteID, msg.ID), msg)
}

// SubscribePlayFinished receives the end of playbacks on one site.
func (f *AudioServerFacade) SubscribePlayFinished(siteID string, cb Callback[ontology.PlayFinishedMessage]) error {
	return subscribe(f.facade, ontology.PlayFinishedTopic(siteID), cb)
}

// SubscribeAllPlayFinished receives the end of playbacks on every site.
func (f *AudioServerFacade) SubscribeAllPlayFinished(cb Callback[ontology.PlayFinishedMessage]) error {
	return subscribe(f.facade, ontology.PlayFinishedTopic(""), cb)
}

// SubscribeAudioFrame receives the audio frames captured on one site.
func (f *AudioServerFacade) SubscribeAudioFrame(siteID string, cb Callback[ontology.AudioFrameMessage]) error {
	return subscribe(f.facade, ontology.AudioFrameTopic(siteID), cb)
}

// AudioServerBackendFacade is used by audio servers.
type AudioServerBackendFacade struct{ componentBackendFacade }

// AudioServerBackendFacade returns a new audio server backend facade.
func (h *Handler) AudioServerBackendFacade() *AudioServerBackendFacade {
	return &AudioServerBackendFacade{newComponentBackend(h, "audio_server_backend", ontology.ComponentAudioServer)}
}

// SubscribePlayBytes receives play requests for one site.
func (f *AudioServerBackendFacade) SubscribePlayBytes(siteID string, cb Callback[ontology.PlayBytesMessage]) error {
	return subscribe(f.facade, ontology.PlayBytesTopic(siteID, ""), cb)
}

// SubscribeAllPlayBytes receives play requests for every site.
func (f *AudioServerBackendFacade) SubscribeAllPlayBytes(cb Callback[ontology.PlayBytesMessage]) error {
	return subscribe(f.facade, ontology.PlayBytesTopic("", ""), cb)
}

// PublishPlayFinished reports the end of a playback.
func (f *AudioServerBackendFacade) PublishPlayFinished(msg *ontology.PlayFinishedMessage) error {
	if msg == nil {
		return publish[ontology.PlayFinishedMessage](f.facade, ontology.PlayFinishedTopic(""), nil)
	}
	return publish(f.facade, ontology.PlayFinishedTopic(msg.SiteID), msg)
}

// PublishAudioFrame publishes a captured audio frame.
func (f *AudioServerBackendFacade) PublishAudioFrame(msg *ontology.AudioFrameMessage) error {
	if msg == nil {
		return publish[ontology.AudioFrameMessage](f.facade, ontology.AudioFrameTopic(""), nil)
	}
	return publish(f.facade, ontology.AudioFrameTopic(msg.SiteID), msg)
}

// DialogueFacade is used by skills to drive dialogue sessions.
type DialogueFacade struct{ componentFacade }

// DialogueFacade returns a new dialogue facade.
func (h *Handler) DialogueFacade() *DialogueFacade {
	return &DialogueFacade{newComponent(h, "dialogue", ontology.ComponentDialogueManager)}
}

// SubscribeSessionQueued receives sessions waiting for a busy site.
func (f *DialogueFacade) SubscribeSessionQueued(cb Callback[ontology.SessionQueuedMessage]) error {
	return subscribe(f.facade, ontology.TopicDialogueSessionQueued, cb)
}

// SubscribeSessionStarted receives opened sessions.
func (f *DialogueFacade) SubscribeSessionStarted(cb Callback[ontology.SessionStartedMessage]) error {
	return subscribe(f.facade, ontology.TopicDialogueSessionStarted, cb)
}

// SubscribeIntent receives one intent.
func (f *DialogueFacade) SubscribeIntent(intentName string, cb Callback[ontology.IntentMessage]) error {
	return subscribe(f.facade, ontology.IntentTopic(intentName), cb)
}

// SubscribeIntents receives every intent.
func (f *DialogueFacade) SubscribeIntents(cb Callback[ontology.IntentMessage]) error {
	return subscribe(f.facade, ontology.IntentTopic(""), cb)
}

// SubscribeIntentNotRecognized receives session inputs that matched nothing.
func (f *DialogueFacade) SubscribeIntentNotRecognized(cb Callback[ontology.IntentNotRecognizedMessage]) error {
	return subscribe(f.facade, ontology.TopicDialogueNotRecognized, cb)
}

// SubscribeSessionEnded receives closed sessions.
func (f *DialogueFacade) SubscribeSessionEnded(cb Callback[ontology.SessionEndedMessage]) error {
	return subscribe(f.facade, ontology.TopicDialogueSessionEnded, cb)
}

// PublishStartSession asks for a new session.
func (f *DialogueFacade) PublishStartSession(msg *ontology.StartSessionMessage) error {
	return publish(f.facade, ontology.TopicDialogueStartSession, msg)
}

// PublishContinueSession keeps a session open.
func (f *DialogueFacade) PublishContinueSession(msg *ontology.ContinueSessionMessage) error {
	return publish(f.facade, ontology.TopicDialogueContinueSession, msg)
}

// PublishEndSession closes a session.
func (f *DialogueFacade) PublishEndSession(msg *ontology.EndSessionMessage) error {
	return publish(f.facade, ontology.TopicDialogueEndSession, msg)
}

// DialogueBackendFacade is used by dialogue managers.
type DialogueBackendFacade struct{ componentBackendFacade }

// DialogueBackendFacade returns a new dialogue backend facade.
func (h *Handler) DialogueBackendFacade() *DialogueBackendFacade {
	return &DialogueBackendFacade{newComponentBackend(h, "dialogue_backend", ontology.ComponentDialogueManager)}
}

// PublishSessionQueued reports a queued session.
func (f *DialogueBackendFacade) PublishSessionQueued(msg *ontology.SessionQueuedMessage) error {
	return publish(f.facade, ontology.TopicDialogueSessionQueued, msg)
}

// PublishSessionStarted reports an opened session.
func (f *DialogueBackendFacade) PublishSessionStarted(msg *ontology.SessionStartedMessage) error {
	return publish(f.facade, ontology.TopicDialogueSessionStarted, msg)
}

// PublishIntent forwards a recognized intent to skills.
func (f *DialogueBackendFacade) PublishIntent(msg *ontology.IntentMessage) error {
	if msg == nil {
		return publish[ontology.IntentMessage](f.facade, ontology.IntentTopic(""), nil)
	}
	return publish(f.facade, ontology.IntentTopic(msg.Intent.IntentName), msg)
}

// PublishIntentNotRecognized reports a session input that matched nothing.
func (f *DialogueBackendFacade) PublishIntentNotRecognized(msg *ontology.IntentNotRecognizedMessage) error {
	return publish(f.facade, ontology.TopicDialogueNotRecognized, msg)
}

// PublishSessionEnded reports a closed session.
func (f *DialogueBackendFacade) PublishSessionEnded(msg *ontology.SessionEndedMessage) error {
	return publish(f.facade, ontology.TopicDialogueSessionEnded, msg)
}

// SubscribeStartSession receives session requests.
func (f *DialogueBackendFacade) SubscribeStartSession(cb Callback[ontology.StartSessionMessage]) error {
	return subscribe(f.facade, ontology.TopicDialogueStartSession, cb)
}

// SubscribeContinueSession receives continue requests.
func (f *DialogueBackendFacade) SubscribeContinueSession(cb Callback[ontology.ContinueSessionMessage]) error {
	return subscribe(f.facade, ontology.TopicDialogueContinueSession, cb)
}

// SubscribeEndSession receives end requests.
func (f *DialogueBackendFacade) SubscribeEndSession(cb Callback[ontology.EndSessionMessage]) error {
	return subscribe(f.facade, ontology.TopicDialogueEndSession, cb)
}

// InjectionFacade injects new entity values into the recognizers.
type InjectionFacade struct{ componentFacade }

// InjectionFacade returns a new injection facade.
func (h *Handler) InjectionFacade() *InjectionFacade {
	return &InjectionFacade{newComponent(h, "injection", ontology.ComponentInjection)}
}

// PublishInjectionRequest asks for values to be injected.
func (f *InjectionFacade) PublishInjectionRequest(msg *ontology.InjectionRequestMessage) error {
	return publish(f.facade, ontology.TopicInjectionPerform, msg)
}

// PublishInjectionStatusRequest asks for the injection status.
func (f *InjectionFacade) PublishInjectionStatusRequest() error {
	return f.publishRaw(ontology.TopicInjectionStatusRequest, nil)
}

// SubscribeInjectionStatus receives injection statuses.
func (f *InjectionFacade) SubscribeInjectionStatus(cb Callback[ontology.InjectionStatusMessage]) error {
	return subscribe(f.facade, ontology.TopicInjectionStatus, cb)
}

// InjectionBackendFacade is used by the injection service.
type InjectionBackendFacade struct{ componentBackendFacade }

// InjectionBackendFacade returns a new injection backend facade.
func (h *Handler) InjectionBackendFacade() *InjectionBackendFacade {
	return &InjectionBackendFacade{newComponentBackend(h, "injection_backend", ontology.ComponentInjection)}
}

// SubscribeInjectionRequest receives injection requests.
func (f *InjectionBackendFacade) SubscribeInjectionRequest(cb Callback[ontology.InjectionRequestMessage]) error {
	return subscribe(f.facade, ontology.TopicInjectionPerform, cb)
}

// SubscribeInjectionStatusRequest is called for every status request.
func (f *InjectionBackendFacade) SubscribeInjectionStatusRequest(cb func()) error {
	return subscribeEmpty(f.facade, ontology.TopicInjectionStatusRequest, cb)
}

// PublishInjectionStatus answers a status request.
func (f *InjectionBackendFacade) PublishInjectionStatus(msg *ontology.InjectionStatusMessage) error {
	return publish(f.facade, ontology.TopicInjectionStatus, msg)
}
