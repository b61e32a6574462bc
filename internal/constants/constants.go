package constants

import "time"

const ConfigBroadcastInterval = 15 * time.Minute
const ShutdownTimeout = 5 * time.Second

// document store collections
const CollectionLighting = "Lighting"
const CollectionSoil = "Soil"
const CollectionDHT22 = "DHT22"
const CollectionCamera = "Camera"
const CollectionGlobal = "Global"
const SubCollectionData = "Data"

const GlobalSettingsDocID = "settings"
const FieldCollectionIntervalHour = "collectionIntervalHour"

// schedule record fields
const FieldStartTime = "start_time"
const FieldEndTime = "end_time"

// sensor reading fields
const FieldDateTime = "date_time"
const FieldActive = "active"
const FieldLastSeen = "last_seen"

// camera snapshots are named IP_IP_IP_IP_YYYYMMDD_HHMMSS.ext
const CameraIPPrefix = "192_168_1_"
const SnapshotTimeLayout = "20060102_150405"

// mqtt
const TopicReadingsSuffix = "readings"
const TopicSettingsSuffix = "settings/interval"

// events
const EventStream = "updates"
const EventTypeScheduleAdded = "schedule_added"
const EventTypeScheduleEdited = "schedule_edited"
const EventTypeScheduleDeleted = "schedule_deleted"
const EventTypeIntervalChanged = "interval_changed"
const EventTypeReadingStored = "reading_stored"

// session keys
const SessionKeyOperator = "authenticatedOperator"

const MinPollingIntervalHours = 1
const MaxPollingIntervalHours = 24
