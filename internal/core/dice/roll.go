package dice

// RollDice rolls every spec in order using src.
//
// Rolls appear in the same order as specs. Each Roll.Total is the sum of its
// Results and Result.Total is the sum of every die rolled.
//
//	result, err := RollDice(src, []Spec{{Sides: 10, Count: 2}})
func RollDice(src Source, specs []Spec) (Result, error) {
	if len(specs) == 0 {
		return Result{}, ErrMissingDice
	}

	rolls := make([]Roll, 0, len(specs))
	total := 0
	for _, spec := range specs {
		if spec.Sides <= 0 || spec.Count <= 0 {
			return Result{}, ErrInvalidDiceSpec
		}

		results := make([]int, spec.Count)
		rollTotal := 0
		for i := range results {
			results[i] = RollDie(src, spec.Sides)
			rollTotal += results[i]
		}

		rolls = append(rolls, Roll{
			Sides:   spec.Sides,
			Results: results,
			Total:   rollTotal,
		})
		total += rollTotal
	}

	return Result{Rolls: rolls, Total: total}, nil
}

// RollDie rolls one die with the given number of sides.
func RollDie(src Source, sides int) int {
	return src.IntN(sides) + 1
}

// FixedSource replays a fixed list of die faces, cycling when exhausted.
// A face outside [1, n] is clamped into range for the die being rolled.
type FixedSource struct {
	faces []int
	next  int
}

// NewFixedSource returns a source that yields faces in order.
func NewFixedSource(faces ...int) *FixedSource {
	return &FixedSource{faces: append([]int(nil), faces...)}
}

// IntN returns the next face minus one, clamped to [0, n).
func (s *FixedSource) IntN(n int) int {
	if len(s.faces) == 0 || n <= 0 {
		return 0
	}
	face := s.faces[s.next%len(s.faces)]
	s.next++
	return min(max(face-1, 0), n-1)
}
