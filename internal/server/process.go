// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import (
	"context"
	"strings"

	"github.com/dkouassi/jokerbot/internal/predictor"
	"github.com/dkouassi/jokerbot/internal/telegram"
	"github.com/dkouassi/jokerbot/pkg/types"
)

// processUpdate routes one inbound update. Commands get static replies;
// everything else only matters when it comes from the configured source
// channel.
func (s *Server) processUpdate(ctx context.Context, update telegram.Update) {
	msg, edited := update.Message, false
	if msg == nil {
		msg, edited = update.EditedMessage, true
	}
	if msg == nil || msg.Text == "" {
		return
	}

	if !edited && strings.HasPrefix(msg.Text, "/") {
		s.handleCommand(ctx, msg)
		return
	}

	ev := buildEvent(msg, edited)
	if ev.ChannelID != s.cfg.Predictor.SourceChannelID {
		return
	}
	s.processChannelEvent(ctx, ev)
}

// buildEvent reduces a Telegram message to the explicit event the pipeline
// consumes. Channel posts carry the channel in sender_chat; plain chats
// fall back to the chat itself.
func buildEvent(msg *telegram.Message, edited bool) types.Event {
	channelID := msg.Chat.ID
	if msg.SenderChat != nil {
		channelID = msg.SenderChat.ID
	}
	return types.Event{
		ChatID:    msg.Chat.ID,
		ChannelID: channelID,
		MessageID: msg.MessageID,
		Text:      msg.Text,
		Edited:    edited,
	}
}

// processChannelEvent applies the routing rules: plain messages are stored,
// provisional edits are filed, finalised edits feed prediction then
// verification, in that order, regardless of the first's outcome.
func (s *Server) processChannelEvent(ctx context.Context, ev types.Event) {
	game, _ := predictor.ExtractGameNumber(ev.Text)

	if !ev.Edited {
		if err := s.store.RecordMessage(ctx, ev, game); err != nil {
			s.log.Error("storing message", "game", game, "err", err)
		}
		return
	}

	switch {
	case predictor.HasCompletionIndicators(ev.Text):
		if err := s.store.RecordMessage(ctx, ev, game); err != nil {
			s.log.Error("storing finalised message", "game", game, "err", err)
		}
		s.runPrediction(ctx, ev)
		s.runVerification(ctx, ev)

	case predictor.HasPendingIndicators(ev.Text):
		s.engine.FilePendingEdit(ev.MessageID, ev.Text)
		if err := s.store.RecordPendingEdit(ctx, ev.MessageID, game, ev.Text); err != nil {
			s.log.Error("storing pending edit", "game", game, "err", err)
		}

	default:
		if err := s.store.RecordMessage(ctx, ev, game); err != nil {
			s.log.Error("storing edited message", "game", game, "err", err)
		}
	}
}

// runPrediction evaluates ev for a new prediction and, on emission, sends
// the templated status message and records its handle for later editing.
func (s *Server) runPrediction(ctx context.Context, ev types.Event) {
	em, ok := s.engine.EvaluateForPrediction(ev.Text, ev.Edited)
	if !ok {
		return
	}

	p := s.engine.CreatePrediction(em.TargetGame, em.SourceGame, em.Combination)
	s.log.Info("prediction emitted", "target", em.TargetGame, "source", em.SourceGame, "combination", em.Combination)

	sent, err := s.bot.SendMessage(ctx, s.targetChat(), em.Text)
	if err != nil {
		s.log.Error("sending prediction", "target", em.TargetGame, "err", err)
		if storeErr := s.store.RecordPrediction(ctx, p, predictor.MessageRef{}); storeErr != nil {
			s.log.Error("recording prediction", "target", em.TargetGame, "err", storeErr)
		}
		return
	}

	ref := predictor.MessageRef{ChatID: sent.Chat.ID, MessageID: sent.MessageID}
	s.engine.RecordSent(em.TargetGame, ref)
	if err := s.store.RecordPrediction(ctx, p, ref); err != nil {
		s.log.Error("recording prediction", "target", em.TargetGame, "err", err)
	}
}

// runVerification evaluates ev against outstanding predictions and applies
// the outcome by editing the original status message in place. A missing
// handle or a rejected edit falls back to sending the new text fresh.
func (s *Server) runVerification(ctx context.Context, ev types.Event) {
	out, ok := s.engine.EvaluateForVerification(ev.Text, ev.Edited)
	if !ok {
		return
	}
	s.log.Info("prediction resolved", "target", out.TargetGame, "status", out.Status, "offset", out.Offset)

	edited := false
	if !out.Ref.IsZero() {
		if err := s.bot.EditMessageText(ctx, out.Ref.ChatID, out.Ref.MessageID, out.NewText); err != nil {
			s.log.Error("editing prediction message", "target", out.TargetGame, "err", err)
		} else {
			edited = true
		}
	}
	if !edited {
		if _, err := s.bot.SendMessage(ctx, s.targetChat(), out.NewText); err != nil {
			s.log.Error("sending resolution fallback", "target", out.TargetGame, "err", err)
		}
	}

	if err := s.store.MarkResolved(ctx, out); err != nil {
		s.log.Error("recording resolution", "target", out.TargetGame, "err", err)
	}
}

// targetChat is where predictions are announced.
func (s *Server) targetChat() int64 {
	if s.cfg.Predictor.TargetChatID != 0 {
		return s.cfg.Predictor.TargetChatID
	}
	return s.cfg.Predictor.SourceChannelID
}

// handleCommand answers the static bot commands, rate limited per user.
func (s *Server) handleCommand(ctx context.Context, msg *telegram.Message) {
	if msg.From == nil {
		return
	}

	command := strings.Fields(msg.Text)[0]
	// Commands addressed to a specific bot ("/help@jokerbot") still count.
	if at := strings.IndexByte(command, '@'); at > 0 {
		command = command[:at]
	}

	reply, known := commandReplies[command]
	if !known {
		return
	}

	if !s.limiter.Allow(msg.From.ID) {
		s.log.Warn("rate limited", "user", msg.From.ID, "command", command)
		return
	}

	if _, err := s.bot.SendMessage(ctx, msg.Chat.ID, reply); err != nil {
		s.log.Error("sending command reply", "command", command, "err", err)
	}
}
