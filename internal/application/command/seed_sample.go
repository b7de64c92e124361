package command

import (
	"context"
	"fmt"
)

// SampleStudents is the demonstration class loaded at start-up.
func SampleStudents() []AddStudentCommand {
	return []AddStudentCommand{
		{Name: "Alice Johnson", Marks: []float64{95.5, 89.0, 92.2, 88.0, 87.5}},
		{Name: "Bob Smith", Marks: []float64{76.2, 82.5, 74.8, 79.0, 81.3}},
		{Name: "Carol Davis", Marks: []float64{95.0, 93.7, 97.5, 94.2, 96.0}},
		{Name: "David Wilson", Marks: []float64{61.3, 64.6, 58.5, 65.0, 63.2}},
	}
}

// SeedSample adds the sample class through the regular add path and returns
// the stored results in insertion order.
func SeedSample(ctx context.Context, h *AddStudentHandler) ([]*AddStudentResult, error) {
	samples := SampleStudents()
	results := make([]*AddStudentResult, 0, len(samples))
	for _, cmd := range samples {
		res, err := h.Handle(ctx, cmd)
		if err != nil {
			return results, fmt.Errorf("seed_sample: %s: %w", cmd.Name, err)
		}
		results = append(results, res)
	}
	return results, nil
}
