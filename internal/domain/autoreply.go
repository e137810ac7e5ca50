package domain

// AutoReplySenderID identifies canned replies in a ticket thread.
const AutoReplySenderID = "agency-assistant"

const (
	replyClarification = "Thanks! We need one quick confirmation before we continue. Your strategist will follow up in this thread shortly."
	replyRevision      = "Revision request received. We're confirming the scope against your remaining revisions and will update you here."
	replyIssue         = "Thanks for flagging this. We're prioritizing it now and will report back as soon as we have an update."
	replyRequest       = "Got it! We're assessing the scope and credit cost of this request and will confirm before work starts."
	replyDefault       = "Update received. Your team has been notified and will respond here."
)

// AutoReplyText returns the canned reply for a ticket type. Announcements and
// unknown types get the generic reply.
func AutoReplyText(t TicketType) string {
	switch t {
	case TicketClarification:
		return replyClarification
	case TicketRevision:
		return replyRevision
	case TicketIssue:
		return replyIssue
	case TicketRequest:
		return replyRequest
	default:
		return replyDefault
	}
}

// NewAutoReply builds the ai message for a ticket; the caller appends it.
func NewAutoReply(t *Ticket) TicketMessage {
	return TicketMessage{
		SenderID:   AutoReplySenderID,
		SenderType: SenderAI,
		Text:       AutoReplyText(t.Type),
	}
}
