package chef

// BakePassword pops the oldest buffered combo, refilling first when the
// buffer is empty, then spices and enhances it.
func (c *Chef) BakePassword() (string, error) {
	if len(c.brew) == 0 {
		c.refill()
	}
	if len(c.brew) == 0 {
		return "", ErrEmptyBuffer
	}

	base := c.brew[0]
	c.brew[0] = ""
	c.brew = c.brew[1:]

	return c.enhance(c.addSpice(base)), nil
}

// enhance may swap the candidate for a similar ingredient, then spices it
// until no weak pattern is left or the repair limit is reached. On the limit
// the best scoring candidate seen is returned.
func (c *Chef) enhance(password string) string {
	if variations := c.advisor.Suggest(password); len(variations) > 0 {
		options := append([]string{password}, variations...)
		password = options[c.rng.IntN(len(options))]
	}

	if !c.scorer.IsCommonPattern(password) {
		return password
	}

	best, bestScore := password, c.scorer.Score(password)
	for i := 0; i < c.repairLimit; i++ {
		password = c.addSpice(password)
		if !c.scorer.IsCommonPattern(password) {
			return password
		}
		if score := c.scorer.Score(password); score > bestScore {
			best, bestScore = password, score
		}
	}

	c.logger.Debug("weak pattern repair limit reached", "limit", c.repairLimit)
	return best
}
