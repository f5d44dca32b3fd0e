package analyzer

import (
	"github.com/ludo-technologies/laast/internal/laast"
)

// TEDAnalyzer computes exact ordered tree edit distances with the
// Zhang-Shasha algorithm
type TEDAnalyzer struct {
	costModel CostModel
}

// NewTEDAnalyzer creates a new analyzer. A nil cost model selects the default.
func NewTEDAnalyzer(costModel CostModel) *TEDAnalyzer {
	if costModel == nil {
		costModel = NewDefaultCostModel()
	}
	return &TEDAnalyzer{costModel: costModel}
}

// Distance returns the minimum cost edit script size between two LAAST trees
func (a *TEDAnalyzer) Distance(left, right laast.Node) (int, error) {
	t1, err := NewTreeConverter().Convert(left)
	if err != nil {
		return 0, err
	}
	t2, err := NewTreeConverter().Convert(right)
	if err != nil {
		return 0, err
	}
	return a.ComputeDistance(t1, t2)
}

// ComputeDistance returns the edit distance between two prepared-or-raw trees
func (a *TEDAnalyzer) ComputeDistance(tree1, tree2 *TreeNode) (int, error) {
	p1, err := PrepareTreeForTED(tree1)
	if err != nil {
		return 0, err
	}
	p2, err := PrepareTreeForTED(tree2)
	if err != nil {
		return 0, err
	}
	return a.distance(p1, p2), nil
}

// distance runs the Zhang-Shasha recurrence over two flattened trees.
// Keyroots are visited in ascending post-order so every tree distance read
// from td has already been computed.
func (a *TEDAnalyzer) distance(t1, t2 *postOrderTree) int {
	n1, n2 := t1.size(), t2.size()
	td := make([]int, n1*n2)
	fd := make([]int, (n1+1)*(n2+1))

	for _, i := range t1.keyRoots {
		for _, j := range t2.keyRoots {
			a.forestDistance(t1, t2, i, j, td, fd)
		}
	}
	return td[(n1-1)*n2+(n2-1)]
}

func (a *TEDAnalyzer) forestDistance(t1, t2 *postOrderTree, i, j int, td, fd []int) {
	n2 := t2.size()
	li, lj := t1.lml[i], t2.lml[j]
	rows, cols := i-li+2, j-lj+2
	ioff, joff := li-1, lj-1
	at := func(x, y int) int { return x*cols + y }

	fd[at(0, 0)] = 0
	for x := 1; x < rows; x++ {
		fd[at(x, 0)] = fd[at(x-1, 0)] + a.costModel.Delete(t1.nodes[x+ioff])
	}
	for y := 1; y < cols; y++ {
		fd[at(0, y)] = fd[at(0, y-1)] + a.costModel.Insert(t2.nodes[y+joff])
	}

	for x := 1; x < rows; x++ {
		xi := x + ioff
		for y := 1; y < cols; y++ {
			yj := y + joff
			del := fd[at(x-1, y)] + a.costModel.Delete(t1.nodes[xi])
			ins := fd[at(x, y-1)] + a.costModel.Insert(t2.nodes[yj])

			if t1.lml[xi] == li && t2.lml[yj] == lj {
				ren := fd[at(x-1, y-1)] + a.costModel.Rename(t1.nodes[xi], t2.nodes[yj])
				fd[at(x, y)] = min(del, ins, ren)
				td[xi*n2+yj] = fd[at(x, y)]
			} else {
				p := t1.lml[xi] - 1 - ioff
				q := t2.lml[yj] - 1 - joff
				fd[at(x, y)] = min(del, ins, fd[at(p, q)]+td[xi*n2+yj])
			}
		}
	}
}
