package domain

// NewSubscriber is a validated subscription request.
type NewSubscriber struct {
	Email SubscriberEmail
	Name  SubscriberName
}

// ParseNewSubscriber validates raw form values. The name is checked first.
func ParseNewSubscriber(name, email string) (NewSubscriber, error) {
	n, err := ParseSubscriberName(name)
	if err != nil {
		return NewSubscriber{}, err
	}
	e, err := ParseSubscriberEmail(email)
	if err != nil {
		return NewSubscriber{}, err
	}
	return NewSubscriber{Email: e, Name: n}, nil
}
