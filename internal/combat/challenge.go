package combat

// Challenge is a timed paperwork confrontation. At most one runs at a time;
// its countdown burns down by tick time and resolves as a failure when it
// reaches zero.
type Challenge struct {
	Tier       int
	Complexity int
	Remaining  float32 // seconds
	Reward     int     // influence granted on success
}

// Rank titles by influence threshold, lowest first.
var rankLadder = []struct {
	Title     string
	Threshold int
}{
	{"Intern", 0},
	{"Clerk", 100},
	{"Senior Clerk", 250},
	{"Office Manager", 500},
	{"Director", 1000},
	{"Executive", 2000},
}

// Progression tracks long-lived standing: influence points, the derived
// rank, and the backlog of unresolved paperwork.
type Progression struct {
	Influence        int
	Rank             int // index into the rank ladder
	PendingPaperwork int
}

func (p *Progression) RankTitle() string {
	return rankLadder[p.Rank].Title
}

// promote advances the rank while the next threshold is met. Returns true
// if at least one promotion happened.
func (p *Progression) promote() bool {
	promoted := false
	for p.Rank+1 < len(rankLadder) && p.Influence >= rankLadder[p.Rank+1].Threshold {
		p.Rank++
		promoted = true
	}
	return promoted
}

// Challenge state on the manager.

// StartChallenge begins a timed challenge at the given difficulty tier.
// Rejected while one is already active or combat is off. Complexity and
// reward scale with the tier; the countdown shrinks as tiers rise.
func (m *Manager) StartChallenge(tier int, prog *Progression) (*Challenge, bool) {
	if !m.Active || m.challenge != nil {
		return nil, false
	}
	if tier < 1 {
		tier = 1
	}

	seconds := m.tun.ChallengeBaseSeconds - float32(tier-1)*2
	if seconds < 5 {
		seconds = 5
	}
	m.challenge = &Challenge{
		Tier:       tier,
		Complexity: tier * 10,
		Remaining:  seconds,
		Reward:     m.tun.ChallengeBaseReward * tier,
	}
	prog.PendingPaperwork++
	return m.challenge, true
}

// ActiveChallenge returns the running challenge, or nil.
func (m *Manager) ActiveChallenge() *Challenge {
	return m.challenge
}

// ChallengeOutcome reports how a challenge ended on the tick it resolved.
type ChallengeOutcome struct {
	Success        bool
	StaminaPenalty float32
	Promoted       bool
}

// TickChallenge burns countdown time and auto-fails an expired challenge,
// charging the stamina penalty. Returns an outcome only on the resolving
// tick.
func (m *Manager) TickChallenge(dt float32, prog *Progression) (ChallengeOutcome, bool) {
	if m.challenge == nil {
		return ChallengeOutcome{}, false
	}
	m.challenge.Remaining -= dt
	if m.challenge.Remaining > 0 {
		return ChallengeOutcome{}, false
	}

	m.challenge = nil
	m.rep.ChallengeResolved(false)
	return ChallengeOutcome{StaminaPenalty: m.tun.ChallengeFailPenalty}, true
}

// ResolveChallenge completes the running challenge by hand: success grants
// the reward and may promote, failure charges stamina like a timeout.
func (m *Manager) ResolveChallenge(success bool, prog *Progression) (ChallengeOutcome, bool) {
	if m.challenge == nil {
		return ChallengeOutcome{}, false
	}
	ch := m.challenge
	m.challenge = nil
	m.rep.ChallengeResolved(success)

	if !success {
		return ChallengeOutcome{StaminaPenalty: m.tun.ChallengeFailPenalty}, true
	}

	prog.Influence += ch.Reward
	if prog.PendingPaperwork > 0 {
		prog.PendingPaperwork--
	}
	return ChallengeOutcome{Success: true, Promoted: prog.promote()}, true
}
