package queue

import "github.com/ThreeDotsLabs/watermill/message"

// -------------------------- 基于业务封装 events --------------------------

// PublishMediaStaged 发布 rv.media.staged 事件。
// 在文件写入暂存树且索引行登记成功后调用，通知下游（如缩略图预热、病毒扫描）。
func PublishMediaStaged(pub message.Publisher, payload MediaStagedPayload, opts ...func(*EventHeader)) error {
	msg, err := NewWatermillMessage(TopicMediaStaged, payload, opts...)
	if err != nil {
		return err
	}

	return pub.Publish(TopicMediaStaged, msg)
}

// PublishMediaSynced 发布 rv.media.synced 事件。
func PublishMediaSynced(pub message.Publisher, payload MediaSyncedPayload, opts ...func(*EventHeader)) error {
	msg, err := NewWatermillMessage(TopicMediaSynced, payload, opts...)
	if err != nil {
		return err
	}

	return pub.Publish(TopicMediaSynced, msg)
}

// PublishMediaReplaced 发布 rv.media.replaced 事件。
func PublishMediaReplaced(pub message.Publisher, payload MediaReplacedPayload, opts ...func(*EventHeader)) error {
	msg, err := NewWatermillMessage(TopicMediaReplaced, payload, opts...)
	if err != nil {
		return err
	}

	return pub.Publish(TopicMediaReplaced, msg)
}

// PublishMediaReaped 发布 rv.media.reaped 事件。
func PublishMediaReaped(pub message.Publisher, payload MediaReapedPayload, opts ...func(*EventHeader)) error {
	msg, err := NewWatermillMessage(TopicMediaReaped, payload, opts...)
	if err != nil {
		return err
	}

	return pub.Publish(TopicMediaReaped, msg)
}

// PublishMediaSwept 发布 rv.media.swept 事件。
func PublishMediaSwept(pub message.Publisher, payload MediaSweptPayload, opts ...func(*EventHeader)) error {
	msg, err := NewWatermillMessage(TopicMediaSwept, payload, opts...)
	if err != nil {
		return err
	}

	return pub.Publish(TopicMediaSwept, msg)
}

// PublishTreasureReaped 发布 rv.treasure.reaped 事件。
func PublishTreasureReaped(pub message.Publisher, payload TreasureReapedPayload, opts ...func(*EventHeader)) error {
	msg, err := NewWatermillMessage(TopicTreasureReaped, payload, opts...)
	if err != nil {
		return err
	}

	return pub.Publish(TopicTreasureReaped, msg)
}

// ParseMediaStaged 将 Watermill 消息解析为强类型 Envelope（MediaStagedPayload）。
func ParseMediaStaged(msg *message.Message) (Message[MediaStagedPayload], error) {
	return ParseWatermillMessage[MediaStagedPayload](msg)
}

// ParseMediaSynced 将 Watermill 消息解析为强类型 Envelope（MediaSyncedPayload）。
func ParseMediaSynced(msg *message.Message) (Message[MediaSyncedPayload], error) {
	return ParseWatermillMessage[MediaSyncedPayload](msg)
}

// ParseMediaReaped 将 Watermill 消息解析为强类型 Envelope（MediaReapedPayload）。
func ParseMediaReaped(msg *message.Message) (Message[MediaReapedPayload], error) {
	return ParseWatermillMessage[MediaReapedPayload](msg)
}
