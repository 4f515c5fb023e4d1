package experiment

import (
	"fmt"
	"time"

	"gonum.org/v1/gonum/stat"
)

// EpisodeStats summarizes a single episode
type EpisodeStats struct {
	Episode     int     `json:"episode"` // 1-based episode number
	Reward      float64 `json:"reward"`
	Steps       int     `json:"steps"`
	Success     bool    `json:"success"`      // treasure reached before the step limit
	TrapVisited bool    `json:"trap_visited"` // any trap entered during the episode
}

// Report aggregates the statistics of a run up to some episode.
//
// SuccessRate and TrapRate are percentages over every episode run so
// far. The Window fields, MeanReward and MeanSteps cover only the
// trailing Window episodes.
type Report struct {
	Episode           int           `json:"episode"`
	Episodes          int           `json:"episodes"`
	Window            int           `json:"window"`
	SuccessRate       float64       `json:"success_rate"`
	TrapRate          float64       `json:"trap_rate"`
	WindowSuccessRate float64       `json:"window_success_rate"`
	WindowTrapRate    float64       `json:"window_trap_rate"`
	MeanReward        float64       `json:"mean_reward"`
	MeanSteps         float64       `json:"mean_steps"`
	Elapsed           time.Duration `json:"elapsed"`
}

// Reporter receives Reports while an experiment runs
type Reporter func(Report)

// NewReport aggregates history into a Report whose trailing window
// covers the last window episodes. The Report covers the whole of
// history if window is not positive or exceeds len(history).
func NewReport(history []EpisodeStats, window, episodes int,
	elapsed time.Duration) Report {
	if len(history) == 0 {
		return Report{Episodes: episodes, Elapsed: elapsed}
	}
	if window <= 0 || window > len(history) {
		window = len(history)
	}

	successes, traps := count(history)
	recent := history[len(history)-window:]
	windowSuccesses, windowTraps := count(recent)

	rewards := make([]float64, len(recent))
	steps := make([]float64, len(recent))
	for i, ep := range recent {
		rewards[i] = ep.Reward
		steps[i] = float64(ep.Steps)
	}

	return Report{
		Episode:           len(history),
		Episodes:          episodes,
		Window:            window,
		SuccessRate:       percent(successes, len(history)),
		TrapRate:          percent(traps, len(history)),
		WindowSuccessRate: percent(windowSuccesses, window),
		WindowTrapRate:    percent(windowTraps, window),
		MeanReward:        stat.Mean(rewards, nil),
		MeanSteps:         stat.Mean(steps, nil),
		Elapsed:           elapsed,
	}
}

func (r Report) String() string {
	return fmt.Sprintf("Episode %d/%d | Success Rate: %.1f%% | "+
		"Trap Rate: %.1f%% | Avg Reward: %.1f | Avg Steps: %.1f",
		r.Episode, r.Episodes, r.SuccessRate, r.TrapRate, r.MeanReward,
		r.MeanSteps)
}

// Statistics holds everything recorded during a training run
type Statistics struct {
	History []EpisodeStats `json:"history"`
	Reports []Report       `json:"reports"` // one per reporting interval
	Final   Report         `json:"final"`   // over the whole run
}

// Rewards returns the total reward of each episode
func (s Statistics) Rewards() []float64 {
	rewards := make([]float64, len(s.History))
	for i, ep := range s.History {
		rewards[i] = ep.Reward
	}
	return rewards
}

// Steps returns the number of steps taken in each episode
func (s Statistics) Steps() []float64 {
	steps := make([]float64, len(s.History))
	for i, ep := range s.History {
		steps[i] = float64(ep.Steps)
	}
	return steps
}

// RollingRewards returns, for each episode, the mean reward over the
// trailing window episodes ending at that episode
func (s Statistics) RollingRewards(window int) []float64 {
	return rolling(s.Rewards(), window)
}

// RollingSuccessRates returns, for each episode, the success rate (%)
// over the trailing window episodes ending at that episode
func (s Statistics) RollingSuccessRates(window int) []float64 {
	successes := make([]float64, len(s.History))
	for i, ep := range s.History {
		if ep.Success {
			successes[i] = 100
		}
	}
	return rolling(successes, window)
}

// String returns a summary of the final Report
func (s Statistics) String() string {
	f := s.Final
	return fmt.Sprintf("Training completed in %.2f seconds\n"+
		"Final Success Rate: %.1f%%\n"+
		"Final Trap Rate: %.1f%%\n"+
		"Final Average Reward: %.1f\n"+
		"Final Average Steps: %.1f",
		f.Elapsed.Seconds(), f.SuccessRate, f.TrapRate, f.MeanReward,
		f.MeanSteps)
}

// rolling returns the mean of each trailing window of x. Windows at the
// start of x hold fewer than window values.
func rolling(x []float64, window int) []float64 {
	if window < 1 {
		panic(fmt.Sprintf("rolling: window must be positive, got %d", window))
	}
	means := make([]float64, len(x))
	for i := range x {
		means[i] = stat.Mean(x[max(0, i+1-window):i+1], nil)
	}
	return means
}

func count(history []EpisodeStats) (successes, traps int) {
	for _, ep := range history {
		if ep.Success {
			successes++
		}
		if ep.TrapVisited {
			traps++
		}
	}
	return successes, traps
}

func percent(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(n) / float64(total) * 100
}
