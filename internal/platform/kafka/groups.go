package kafka

import (
	"context"
	"fmt"

	kafkago "github.com/segmentio/kafka-go"
)

// GroupInspector reports consumer-group membership via the broker's
// admin protocol. Used only as a point-in-time liveness signal for the
// worker pool.
type GroupInspector struct {
	client *kafkago.Client
}

// NewGroupInspector creates an inspector for the given bootstrap brokers.
func NewGroupInspector(brokers []string) *GroupInspector {
	return &GroupInspector{
		client: &kafkago.Client{Addr: kafkago.TCP(brokers...)},
	}
}

// GroupMemberCount returns the number of members currently registered in
// the named consumer group. A group the broker does not know about has
// zero members.
func (g *GroupInspector) GroupMemberCount(ctx context.Context, group string) (int, error) {
	resp, err := g.client.DescribeGroups(ctx, &kafkago.DescribeGroupsRequest{
		GroupIDs: []string{group},
	})
	if err != nil {
		return 0, fmt.Errorf("describe group %q: %w", group, err)
	}
	for _, grp := range resp.Groups {
		if grp.GroupID != group {
			continue
		}
		if grp.Error != nil {
			return 0, fmt.Errorf("describe group %q: %w", group, grp.Error)
		}
		return len(grp.Members), nil
	}
	return 0, nil
}
