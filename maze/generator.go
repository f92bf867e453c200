// Package maze generates spanning-tree mazes over a cell grid. Effects use
// the passage grid and the BFS distance walk to order glyph reveals.
package maze

import "math/rand"

// Cell types
const (
	Wall    = true
	Passage = false
)

type Point struct {
	X, Y int
}

// Algorithm selects the spanning-tree construction.
type Algorithm int

const (
	// Backtracker carves long winding corridors (depth-first).
	Backtracker Algorithm = iota
	// Prim grows the tree from random frontier walls, producing short
	// branchy corridors.
	Prim
	// AldousBroder random-walks until every cell is visited, producing an
	// unbiased uniform spanning tree. Slow on large grids.
	AldousBroder
)

type Config struct {
	Width, Height int
	Algorithm     Algorithm

	StartPos *Point // Optional (nil = top-left passage cell)
	Seed     int64  // Same seed, same maze
}

type Result struct {
	Grid  [][]bool
	Start Point
}

// Generate carves a maze. Dimensions round down to odd so the passage
// lattice stays within the requested bounds.
func Generate(cfg Config) Result {
	rows := ensureOdd(cfg.Height)
	cols := ensureOdd(cfg.Width)

	grid := make([][]bool, rows)
	for i := range grid {
		grid[i] = make([]bool, cols)
		for j := range grid[i] {
			grid[i][j] = Wall
		}
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	start := Point{1, 1}
	if cfg.StartPos != nil {
		start = clampOdd(*cfg.StartPos, cols, rows)
	}

	switch cfg.Algorithm {
	case Prim:
		prim(grid, start, rng)
	case AldousBroder:
		aldousBroder(grid, start, rng)
	default:
		backtracker(grid, start, rng)
	}

	return Result{Grid: grid, Start: start}
}

var dirs = []Point{{0, -2}, {0, 2}, {-2, 0}, {2, 0}}

func backtracker(grid [][]bool, start Point, rng *rand.Rand) {
	rows, cols := len(grid), len(grid[0])
	stack := []Point{start}
	grid[start.Y][start.X] = Passage

	for len(stack) > 0 {
		curr := stack[len(stack)-1]
		candidates := make([]Point, 0, 4)
		for _, d := range dirs {
			nx, ny := curr.X+d.X, curr.Y+d.Y
			if nx > 0 && nx < cols-1 && ny > 0 && ny < rows-1 && grid[ny][nx] == Wall {
				candidates = append(candidates, d)
			}
		}
		if len(candidates) == 0 {
			stack = stack[:len(stack)-1]
			continue
		}
		d := candidates[rng.Intn(len(candidates))]
		grid[curr.Y+d.Y/2][curr.X+d.X/2] = Passage
		grid[curr.Y+d.Y][curr.X+d.X] = Passage
		stack = append(stack, Point{curr.X + d.X, curr.Y + d.Y})
	}
}

// frontierWall is a wall between a carved cell and an uncarved neighbor.
type frontierWall struct {
	wall, next Point
}

func prim(grid [][]bool, start Point, rng *rand.Rand) {
	rows, cols := len(grid), len(grid[0])
	grid[start.Y][start.X] = Passage

	var frontier []frontierWall
	addFrontier := func(p Point) {
		for _, d := range dirs {
			nx, ny := p.X+d.X, p.Y+d.Y
			if nx > 0 && nx < cols-1 && ny > 0 && ny < rows-1 && grid[ny][nx] == Wall {
				frontier = append(frontier, frontierWall{
					wall: Point{p.X + d.X/2, p.Y + d.Y/2},
					next: Point{nx, ny},
				})
			}
		}
	}
	addFrontier(start)

	for len(frontier) > 0 {
		i := rng.Intn(len(frontier))
		fw := frontier[i]
		frontier[i] = frontier[len(frontier)-1]
		frontier = frontier[:len(frontier)-1]

		if grid[fw.next.Y][fw.next.X] == Wall {
			grid[fw.wall.Y][fw.wall.X] = Passage
			grid[fw.next.Y][fw.next.X] = Passage
			addFrontier(fw.next)
		}
	}
}

func aldousBroder(grid [][]bool, start Point, rng *rand.Rand) {
	rows, cols := len(grid), len(grid[0])
	totalCells := ((rows - 1) / 2) * ((cols - 1) / 2)

	curr := start
	grid[curr.Y][curr.X] = Passage
	visited := 1

	for visited < totalCells {
		d := dirs[rng.Intn(len(dirs))]
		nx, ny := curr.X+d.X, curr.Y+d.Y
		if nx <= 0 || nx >= cols-1 || ny <= 0 || ny >= rows-1 {
			continue
		}
		if grid[ny][nx] == Wall {
			grid[curr.Y+d.Y/2][curr.X+d.X/2] = Passage
			grid[ny][nx] = Passage
			visited++
		}
		curr = Point{nx, ny}
	}
}

// WalkBFS returns every passage cell reachable from start in breadth-first
// distance order. Effects use the ordering to schedule reveals.
func WalkBFS(grid [][]bool, start Point) []Point {
	rows := len(grid)
	if rows == 0 {
		return nil
	}
	cols := len(grid[0])
	if start.X < 0 || start.X >= cols || start.Y < 0 || start.Y >= rows || grid[start.Y][start.X] == Wall {
		return nil
	}

	steps := []Point{{0, -1}, {0, 1}, {-1, 0}, {1, 0}}
	visited := make([][]bool, rows)
	for i := range visited {
		visited[i] = make([]bool, cols)
	}

	order := []Point{start}
	visited[start.Y][start.X] = true
	for i := 0; i < len(order); i++ {
		curr := order[i]
		for _, d := range steps {
			nx, ny := curr.X+d.X, curr.Y+d.Y
			if nx < 0 || nx >= cols || ny < 0 || ny >= rows {
				continue
			}
			if visited[ny][nx] || grid[ny][nx] == Wall {
				continue
			}
			visited[ny][nx] = true
			order = append(order, Point{nx, ny})
		}
	}
	return order
}

func ensureOdd(n int) int {
	if n < 3 {
		return 3
	}
	if n%2 == 0 {
		return n - 1
	}
	return n
}

func clampOdd(p Point, cols, rows int) Point {
	x, y := p.X|1, p.Y|1
	if x < 1 {
		x = 1
	}
	if x > cols-2 {
		x = (cols - 2) | 1
	}
	if y < 1 {
		y = 1
	}
	if y > rows-2 {
		y = (rows - 2) | 1
	}
	return Point{x, y}
}
