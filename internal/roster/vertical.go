package roster

// Vertical is the closed industry-sector classification assigned to a
// candidate, either directly from a feed code or inferred from the training
// site name.
type Vertical string

const (
	Aviation         Vertical = "Aviation"
	Automotive       Vertical = "Automotive"
	Distribution     Vertical = "Distribution"
	Finance          Vertical = "Finance"
	Manufacturing    Vertical = "Manufacturing"
	Technology       Vertical = "Technology"
	LifeScience      Vertical = "Life Science"
	RDEducationOther Vertical = "R&D / Education / Other"
	UnknownVertical  Vertical = "Unknown"
)

// ResolutionOrder is the canonical order vertical keyword lists are checked
// in. First match wins, so the order is part of the contract.
var ResolutionOrder = []Vertical{
	Aviation,
	Automotive,
	Distribution,
	Finance,
	Manufacturing,
	Technology,
	LifeScience,
	RDEducationOther,
}
