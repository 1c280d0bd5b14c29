package live

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/Dosada05/esports-scoreboard/models"
)

// StandingsSource supplies the recomputed views the notifier pushes. It is
// satisfied by the standings service; tests substitute a fake.
type StandingsSource interface {
	MatchView(ctx context.Context, matchID int) ([]*models.MatchStanding, error)
	GameView(ctx context.Context, gameID int) ([]*models.OverallStanding, error)
	GameIDForMatch(ctx context.Context, matchID int) (int, error)
}

// Notifier consumes "something changed" events from the mutation paths and
// turns them into room broadcasts. Callers emit events only after a
// successful write: a failed persistence step must never reach subscribers.
type Notifier interface {
	// MatchUpdated recomputes and pushes the match view to the match room
	// and the owning game's cumulative view to the game room.
	MatchUpdated(ctx context.Context, matchID int)

	// TeamsChanged is the roster-change variant of MatchUpdated: same two
	// pushes, but the match room receives a teams-changed event type so
	// control panels re-pull team metadata as well.
	TeamsChanged(ctx context.Context, matchID int)

	// GameUpdated recomputes and pushes only the cumulative game view, for
	// structural changes like a match being deleted from the game.
	GameUpdated(ctx context.Context, gameID int)

	// GamesChanged tells every connected client the game list itself moved.
	GamesChanged(ctx context.Context)
}

type hubNotifier struct {
	hub    *Hub
	source StandingsSource
	logger *slog.Logger
}

func NewHubNotifier(hub *Hub, source StandingsSource, logger *slog.Logger) Notifier {
	n := &hubNotifier{
		hub:    hub,
		source: source,
		logger: logger,
	}
	hub.SetJoinFunc(n.sendSnapshot)
	return n
}

func (n *hubNotifier) MatchUpdated(ctx context.Context, matchID int) {
	n.push(ctx, matchID, EventMatchStandings)
}

func (n *hubNotifier) TeamsChanged(ctx context.Context, matchID int) {
	n.push(ctx, matchID, EventTeamsChanged)
}

func (n *hubNotifier) GameUpdated(ctx context.Context, gameID int) {
	view, err := n.source.GameView(ctx, gameID)
	if err != nil {
		n.logger.Error("broadcast skipped: failed to recompute game view",
			slog.Int("game_id", gameID), slog.Any("error", err))
		return
	}
	n.hub.BroadcastToRoom(GameRoom(gameID), Message{
		Type:    EventOverallStandings,
		Payload: view,
	})
}

func (n *hubNotifier) GamesChanged(_ context.Context) {
	n.hub.BroadcastAll(Message{Type: EventGamesChanged})
}

// push recomputes both affected views and fans them out. A recompute failure
// is logged and swallowed: the mutation already persisted, subscribers simply
// keep their last snapshot until the next successful push.
func (n *hubNotifier) push(ctx context.Context, matchID int, matchEventType string) {
	gameID, err := n.source.GameIDForMatch(ctx, matchID)
	if err != nil {
		n.logger.Error("broadcast skipped: failed to resolve owning game",
			slog.Int("match_id", matchID), slog.Any("error", err))
		return
	}

	var (
		matchView []*models.MatchStanding
		gameView  []*models.OverallStanding
	)
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		matchView, err = n.source.MatchView(gCtx, matchID)
		return err
	})
	g.Go(func() error {
		var err error
		gameView, err = n.source.GameView(gCtx, gameID)
		return err
	})
	if err := g.Wait(); err != nil {
		n.logger.Error("broadcast skipped: failed to recompute standings",
			slog.Int("match_id", matchID), slog.Int("game_id", gameID), slog.Any("error", err))
		return
	}

	n.hub.BroadcastToRoom(MatchRoom(matchID), Message{
		Type:    matchEventType,
		Payload: matchView,
	})
	n.hub.BroadcastToRoom(GameRoom(gameID), Message{
		Type:    EventOverallStandings,
		Payload: gameView,
	})
}

// sendSnapshot answers a join with one immediate push of the current view to
// the joining client alone, closing the gap between page load and the next
// mutation.
func (n *hubNotifier) sendSnapshot(client *Client, scope Scope, id int) {
	ctx := context.Background()

	var msg Message
	switch scope {
	case ScopeMatch:
		view, err := n.source.MatchView(ctx, id)
		if err != nil {
			n.logger.Error("join snapshot failed", slog.Int("match_id", id), slog.Any("error", err))
			return
		}
		msg = Message{Type: EventMatchStandings, Payload: view, RoomID: MatchRoom(id)}
	case ScopeGame:
		view, err := n.source.GameView(ctx, id)
		if err != nil {
			n.logger.Error("join snapshot failed", slog.Int("game_id", id), slog.Any("error", err))
			return
		}
		msg = Message{Type: EventOverallStandings, Payload: view, RoomID: GameRoom(id)}
	default:
		return
	}

	messageBytes, err := marshalMessage(msg)
	if err != nil {
		n.logger.Error("join snapshot marshal failed", slog.Any("error", err))
		return
	}
	client.Enqueue(messageBytes)
}
