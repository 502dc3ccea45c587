package whatsapp

import (
	"go.mau.fi/whatsmeow/proto/waE2E"
	"go.mau.fi/whatsmeow/types"
	"go.mau.fi/whatsmeow/types/events"

	"github.com/reshetovitsme/wa-capture-agent/internal/modules/message/domain"
	"github.com/samber/lo"
)

// InboundEvent converts a live message into the agent's event. ok is
// false for messages that are not content: protocol and sender-key
// messages, and messages sent by this account.
func InboundEvent(evt *events.Message) (domain.InboundEvent, bool) {
	msg := evt.Message
	if msg == nil || evt.Info.IsFromMe {
		return domain.InboundEvent{}, false
	}
	if msg.GetSenderKeyDistributionMessage() != nil && !hasContent(msg) {
		return domain.InboundEvent{}, false
	}
	if msg.GetProtocolMessage() != nil {
		return domain.InboundEvent{}, false
	}

	info := evt.Info
	out := domain.InboundEvent{
		ID:          info.ID,
		ChatID:      jidString(info.Chat),
		SenderID:    jidString(info.Sender.ToNonAD()),
		DisplayName: info.PushName,
		Payload:     Payload(msg),
	}
	if !info.Timestamp.IsZero() {
		out.Timestamp = info.Timestamp.Unix()
	}
	return out, true
}

// Payload picks the message content. Media is checked in priority order
// image, video, sticker, document, audio.
func Payload(msg *waE2E.Message) domain.Payload {
	if img := msg.GetImageMessage(); img != nil {
		return domain.Image{
			Media:   media(img.GetMimetype(), img.GetFileLength(), img),
			Width:   img.GetWidth(),
			Height:  img.GetHeight(),
			Caption: img.GetCaption(),
		}
	}
	if vid := msg.GetVideoMessage(); vid != nil {
		return domain.Video{
			Media:   media(vid.GetMimetype(), vid.GetFileLength(), vid),
			Width:   vid.GetWidth(),
			Height:  vid.GetHeight(),
			Seconds: vid.GetSeconds(),
			Caption: vid.GetCaption(),
		}
	}
	if st := msg.GetStickerMessage(); st != nil {
		return domain.Sticker{
			Media:      media(st.GetMimetype(), st.GetFileLength(), st),
			Width:      st.GetWidth(),
			Height:     st.GetHeight(),
			IsAnimated: st.GetIsAnimated(),
			IsAvatar:   st.GetIsAvatar(),
		}
	}
	if doc := document(msg); doc != nil {
		return domain.Document{
			Media:     media(doc.GetMimetype(), doc.GetFileLength(), doc),
			FileName:  doc.GetFileName(),
			PageCount: doc.GetPageCount(),
		}
	}
	if aud := msg.GetAudioMessage(); aud != nil {
		return domain.Audio{
			Media:   media(aud.GetMimetype(), aud.GetFileLength(), aud),
			Seconds: aud.GetSeconds(),
			PTT:     aud.GetPTT(),
		}
	}

	if msg.Conversation != nil {
		return domain.Text{Body: msg.GetConversation()}
	}
	if ext := msg.GetExtendedTextMessage(); ext != nil {
		return domain.Text{Body: ext.GetText()}
	}
	return domain.Unsupported{Type: unsupportedType(msg)}
}

func media(mimetype string, length uint64, ref domain.MediaRef) domain.Media {
	return domain.Media{Mimetype: mimetype, FileLength: length, Ref: ref}
}

// document also unwraps documents sent with a caption.
func document(msg *waE2E.Message) *waE2E.DocumentMessage {
	if doc := msg.GetDocumentMessage(); doc != nil {
		return doc
	}
	return msg.GetDocumentWithCaptionMessage().GetMessage().GetDocumentMessage()
}

func hasContent(msg *waE2E.Message) bool {
	_, unsupported := Payload(msg).(domain.Unsupported)
	return !unsupported
}

func unsupportedType(msg *waE2E.Message) string {
	switch {
	case msg.GetLocationMessage() != nil, msg.GetLiveLocationMessage() != nil:
		return "location"
	case msg.GetContactMessage() != nil, msg.GetContactsArrayMessage() != nil:
		return "contact"
	case msg.GetReactionMessage() != nil, msg.GetEncReactionMessage() != nil:
		return "reaction"
	case msg.GetPollCreationMessage() != nil, msg.GetPollCreationMessageV3() != nil, msg.GetPollUpdateMessage() != nil:
		return "poll"
	case msg.GetSenderKeyDistributionMessage() != nil:
		return "sender_key"
	default:
		return "unknown"
	}
}

func jidString(jid types.JID) string {
	if jid.IsEmpty() {
		return ""
	}
	return jid.String()
}

// Deletions extracts deletion records from a revoke message or a
// delete-for-me sync action. ok is false for anything else.
func Deletions(evt any) ([]domain.DeletionRecord, bool) {
	switch v := evt.(type) {
	case *events.Message:
		pm := v.Message.GetProtocolMessage()
		if pm == nil || pm.GetType() != waE2E.ProtocolMessage_REVOKE {
			return nil, false
		}
		key := pm.GetKey()
		sender := key.GetParticipant()
		if sender == "" && !key.GetFromMe() {
			sender = jidString(v.Info.Sender.ToNonAD())
		}
		return []domain.DeletionRecord{{
			Kind:      domain.DeletionKindRevoke,
			MessageID: key.GetID(),
			ChatID:    lo.CoalesceOrEmpty(key.GetRemoteJID(), jidString(v.Info.Chat)),
			SenderID:  sender,
			FromMe:    key.GetFromMe(),
			DeletedBy: jidString(v.Info.Sender.ToNonAD()),
			DeletedAt: v.Info.Timestamp,
		}}, true
	case *events.DeleteForMe:
		return []domain.DeletionRecord{{
			Kind:      domain.DeletionKindDeleteForMe,
			MessageID: v.MessageID,
			ChatID:    jidString(v.ChatJID),
			SenderID:  jidString(v.SenderJID),
			FromMe:    v.IsFromMe,
			DeletedAt: v.Timestamp,
		}}, true
	}
	return nil, false
}
