package actor

import (
	"fmt"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// CollisionType decides how much of a separation an actor absorbs.
type CollisionType uint8

const (
	SolidObject CollisionType = iota
	Character
	Item

	collisionTypeCount
)

func (c CollisionType) String() string {
	switch c {
	case SolidObject:
		return "solid"
	case Character:
		return "character"
	case Item:
		return "item"
	}
	return fmt.Sprintf("CollisionType(%d)", uint8(c))
}

// Kind is the gameplay role used by the compatibility table.
type Kind uint8

const (
	KindPlayer Kind = iota
	KindEnemy
	KindPlayerAttack
	KindEnemyAttack
	KindItem
	KindNeutral

	kindCount
)

func (k Kind) String() string {
	switch k {
	case KindPlayer:
		return "player"
	case KindEnemy:
		return "enemy"
	case KindPlayerAttack:
		return "player-attack"
	case KindEnemyAttack:
		return "enemy-attack"
	case KindItem:
		return "item"
	case KindNeutral:
		return "neutral"
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// compatible is symmetric; only the upper triangle is written and mirrored in init.
var compatible = [kindCount][kindCount]bool{
	KindPlayer: {
		KindPlayer: true, KindEnemy: true, KindEnemyAttack: true, KindItem: true, KindNeutral: true,
	},
	KindEnemy: {
		KindEnemy: true, KindPlayerAttack: true, KindNeutral: true,
	},
	KindPlayerAttack: {
		KindEnemyAttack: true, KindNeutral: true,
	},
	KindEnemyAttack: {
		KindNeutral: true,
	},
	KindNeutral: {
		KindNeutral: true,
	},
}

func init() {
	for i := Kind(0); i < kindCount; i++ {
		for j := i + 1; j < kindCount; j++ {
			if compatible[i][j] {
				compatible[j][i] = true
			}
		}
	}
}

// Compatible reports whether actors of these kinds collide at all.
func Compatible(a, b Kind) bool {
	if a >= kindCount || b >= kindCount {
		return false
	}
	return compatible[a][b]
}

// resistance[self][other] is how readily self gives way to other.
var resistance = [collisionTypeCount][collisionTypeCount]float32{
	SolidObject: {SolidObject: 0, Character: 0, Item: 0},
	Character:   {SolidObject: 1, Character: 0.1, Item: 0},
	Item:        {SolidObject: 1, Character: 0, Item: 0},
}

// Resistance returns the weight in [0,1] of self against other.
func Resistance(self, other CollisionType) float32 {
	if self >= collisionTypeCount || other >= collisionTypeCount {
		return 0
	}
	return resistance[self][other]
}

// Split returns the share of a separation each side takes. The shares sum
// to one unless both weights are zero, in which case neither side moves.
func Split(a, b CollisionType) (float32, float32) {
	w0, w1 := Resistance(a, b), Resistance(b, a)
	sum := w0 + w1
	if sum <= 0 {
		return 0, 0
	}
	return w0 / sum, w1 / sum
}

// Case classifies vertical contact between two actors.
type Case uint8

const (
	CaseCenter Case = iota
	// CaseUpper is reported to the lower actor: the other one is above it.
	CaseUpper
	// CaseLower is reported to the higher actor.
	CaseLower
)

func (c Case) String() string {
	switch c {
	case CaseCenter:
		return "center"
	case CaseUpper:
		return "upper"
	case CaseLower:
		return "lower"
	}
	return fmt.Sprintf("Case(%d)", uint8(c))
}

// Classify projects the center-to-center vector onto each actor's up vector.
// Only when both projections clear both half-heights is the contact
// vertical; otherwise, or when the two up vectors disagree on which actor is
// on top, both sides are Center.
func Classify(a, b *Actor) (forA, forB Case) {
	up0 := rl.Vector3Normalize(a.Up)
	up1 := rl.Vector3Normalize(b.Up)
	p0 := rl.Vector3DotProduct(rl.Vector3Subtract(b.Position, a.Position), up0)
	p1 := rl.Vector3DotProduct(rl.Vector3Subtract(a.Position, b.Position), up1)

	h := math32.Max(a.HalfHeight(), b.HalfHeight())
	if math32.Abs(p0) <= h || math32.Abs(p1) <= h {
		return CaseCenter, CaseCenter
	}
	forA, forB = sideOf(p0), sideOf(p1)
	if forA == forB {
		return CaseCenter, CaseCenter
	}
	return forA, forB
}

func sideOf(p float32) Case {
	switch {
	case p > 0:
		return CaseUpper
	case p < 0:
		return CaseLower
	}
	return CaseCenter
}
